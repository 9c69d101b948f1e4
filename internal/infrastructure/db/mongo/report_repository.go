package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rogpool/service-reports/internal/core/domain"
	"github.com/rogpool/service-reports/internal/core/ports"
)

const collectionReports = "service_reports"

type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(collectionReports)}
}

// Create inserts a new report document.
func (r *ReportRepository) Create(ctx context.Context, rep *domain.ServiceReport) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, rep)
	return err
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.ServiceReport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rep domain.ServiceReport
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&rep); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return &rep, nil
}

// List returns reports newest first. When filter.EmployeeID is non-empty only
// that employee's reports are returned.
func (r *ReportRepository) List(ctx context.Context, filter ports.ListReportsFilter) ([]*domain.ServiceReport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.EmployeeID != "" {
		query["employee_id"] = filter.EmployeeID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(listLimit)
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	reports := make([]*domain.ServiceReport, 0)
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Update sets the patched fields and appends a history entry in one atomic
// document write, returning the document as it is after the update.
func (r *ReportRepository) Update(ctx context.Context, id string, patch domain.ReportPatch, mod domain.Modification) (*domain.ServiceReport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set":  patchToSet(patch, mod.ModifiedAt),
		"$push": bson.M{"modification_history": mod},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rep domain.ServiceReport
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&rep); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func patchToSet(p domain.ReportPatch, modifiedAt time.Time) bson.M {
	set := bson.M{"last_modified": modifiedAt}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.AdminNotes != nil {
		set["admin_notes"] = *p.AdminNotes
	}
	if p.EmployeeNotes != nil {
		set["employee_notes"] = *p.EmployeeNotes
	}
	if p.CompletionDate != nil {
		set["completion_date"] = p.CompletionDate.UTC()
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Priority != nil {
		set["priority"] = string(*p.Priority)
	}
	if p.Photos != nil {
		set["photos"] = *p.Photos
	}
	return set
}

// EnsureIndexes creates necessary indexes on the service_reports collection.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
