package repositories

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"spareparts-app/models"
	"spareparts-app/storage"
)

// SparePartRepository owns the joined listing queries and the multi-step
// mutations that couple spare part records to their image blobs.
type SparePartRepository struct {
	db    *gorm.DB
	blobs storage.BlobStore
}

func NewSparePartRepository(db *gorm.DB, blobs storage.BlobStore) *SparePartRepository {
	return &SparePartRepository{db: db, blobs: blobs}
}

// FindAll returns every part with owner and category references loaded,
// newest first.
func (r *SparePartRepository) FindAll() ([]models.SparePart, error) {
	var parts []models.SparePart
	err := r.db.
		Preload("PartLocation").Preload("CarType").Preload("CarModel").Preload("Owner").
		Order("created_at DESC").
		Find(&parts).Error
	return parts, err
}

// FindByOwner returns one user's parts, newest first.
func (r *SparePartRepository) FindByOwner(ownerID string) ([]models.SparePart, error) {
	var parts []models.SparePart
	err := r.db.
		Preload("PartLocation").Preload("CarType").Preload("CarModel").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&parts).Error
	return parts, err
}

// FindByID loads a single part with its references.
func (r *SparePartRepository) FindByID(id string) (*models.SparePart, error) {
	var part models.SparePart
	err := r.db.
		Preload("PartLocation").Preload("CarType").Preload("CarModel").Preload("Owner").
		First(&part, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

// Recent returns the newest parts for the home page.
func (r *SparePartRepository) Recent(limit int) ([]models.SparePart, error) {
	var parts []models.SparePart
	err := r.db.
		Preload("PartLocation").Preload("CarType").Preload("CarModel").Preload("Owner").
		Order("created_at DESC").
		Limit(limit).
		Find(&parts).Error
	return parts, err
}

// DeleteWithImage removes the part record and its image blob. The record
// delete is authoritative; a failed blob delete is logged and does not undo
// it. Parts without an image never touch the blob store.
func (r *SparePartRepository) DeleteWithImage(ctx context.Context, part *models.SparePart) error {
	if err := r.db.Delete(&models.SparePart{}, "id = ?", part.ID).Error; err != nil {
		return err
	}

	if part.HasImage() {
		if err := r.blobs.Delete(ctx, part.Image); err != nil {
			logrus.WithError(err).WithField("key", part.Image).Warn("failed to delete part image blob")
		}
	}
	return nil
}

// DeleteUserCascade removes a user and everything they own. Parts are
// deleted before the user inside one transaction, so an interrupted cascade
// can never leave parts referencing a deleted owner. Blob cleanup runs after
// commit and is best-effort.
func (r *SparePartRepository) DeleteUserCascade(ctx context.Context, userID string) error {
	var parts []models.SparePart
	if err := r.db.Where("owner_id = ?", userID).Find(&parts).Error; err != nil {
		return err
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", userID).Delete(&models.SparePart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
	if err != nil {
		return err
	}

	for _, part := range parts {
		if !part.HasImage() {
			continue
		}
		if err := r.blobs.Delete(ctx, part.Image); err != nil {
			logrus.WithError(err).WithField("key", part.Image).Warn("failed to delete part image blob")
		}
	}
	return nil
}
