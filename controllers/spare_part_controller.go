package controllers

import (
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"spareparts-app/models"
	"spareparts-app/repositories"
	"spareparts-app/storage"
	"spareparts-app/utils"
)

type SparePartController struct {
	db    *gorm.DB
	repo  *repositories.SparePartRepository
	blobs storage.BlobStore
}

func NewSparePartController(db *gorm.DB, repo *repositories.SparePartRepository, blobs storage.BlobStore) *SparePartController {
	return &SparePartController{db: db, repo: repo, blobs: blobs}
}

// Index lists every part. Public.
func (sc *SparePartController) Index(c *gin.Context) {
	parts, err := sc.repo.FindAll()
	if err != nil {
		logrus.WithError(err).Error("failed to fetch spare parts")
		utils.FlashError(c, "Error loading spare parts")
		c.Redirect(http.StatusFound, "/")
		return
	}

	utils.Render(c, http.StatusOK, "spare-parts/index.html", gin.H{
		"title":      "All Spare Parts",
		"spareParts": parts,
	})
}

// Mine lists the authenticated user's parts.
func (sc *SparePartController) Mine(c *gin.Context) {
	user := utils.CurrentUser(c)

	parts, err := sc.repo.FindByOwner(user.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to fetch user spare parts")
		utils.FlashError(c, "Error loading your spare parts")
		c.Redirect(http.StatusFound, "/spare-parts")
		return
	}

	utils.Render(c, http.StatusOK, "spare-parts/my-parts.html", gin.H{
		"title":      "My Spare Parts",
		"spareParts": parts,
	})
}

func (sc *SparePartController) RenderCreateForm(c *gin.Context) {
	partLocations, carTypes, err := sc.loadFormCatalog()
	if err != nil {
		logrus.WithError(err).Error("failed to load create form catalog")
		utils.FlashError(c, "Error loading form")
		c.Redirect(http.StatusFound, "/spare-parts")
		return
	}

	utils.Render(c, http.StatusOK, "spare-parts/new.html", gin.H{
		"title":         "Add New Spare Part",
		"partLocations": partLocations,
		"carTypes":      carTypes,
	})
}

func (sc *SparePartController) Create(c *gin.Context) {
	user := utils.CurrentUser(c)

	name := strings.TrimSpace(c.PostForm("name"))
	partLocationID := c.PostForm("part_location")
	carTypeID := c.PostForm("car_type")
	carModelID := c.PostForm("car_model")
	price, priceOK := utils.ParsePrice(c.PostForm("price"))

	if name == "" || partLocationID == "" || carTypeID == "" || carModelID == "" || !priceOK {
		utils.FlashError(c, "Please fill in all required fields")
		c.Redirect(http.StatusFound, "/spare-parts/new")
		return
	}

	part := models.SparePart{
		ID:             uuid.New().String(),
		Name:           name,
		Description:    strings.TrimSpace(c.PostForm("description")),
		Price:          price,
		PartLocationID: partLocationID,
		CarTypeID:      carTypeID,
		CarModelID:     carModelID,
		OwnerID:        user.ID,
		CreatedAt:      time.Now(),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		key, err := sc.storeUpload(c, file)
		if err != nil {
			logrus.WithError(err).Error("failed to store part image")
			utils.FlashError(c, "Error uploading image. Please try again.")
			c.Redirect(http.StatusFound, "/spare-parts/new")
			return
		}
		part.Image = key
	}

	if err := sc.db.Create(&part).Error; err != nil {
		logrus.WithError(err).Error("failed to create spare part")
		utils.FlashError(c, "Error creating spare part. Please try again.")
		c.Redirect(http.StatusFound, "/spare-parts/new")
		return
	}

	utils.FlashSuccess(c, "Spare part added successfully!")
	c.Redirect(http.StatusFound, "/spare-parts")
}

// Show renders one part. Public; unknown IDs redirect to the listing.
func (sc *SparePartController) Show(c *gin.Context) {
	part, err := sc.repo.FindByID(c.Param("id"))
	if err != nil {
		utils.FlashError(c, "Spare part not found")
		c.Redirect(http.StatusFound, "/spare-parts")
		return
	}

	utils.Render(c, http.StatusOK, "spare-parts/show.html", gin.H{
		"title":     part.Name,
		"sparePart": part,
	})
}

func (sc *SparePartController) RenderEditForm(c *gin.Context) {
	user := utils.CurrentUser(c)

	part, err := sc.repo.FindByID(c.Param("id"))
	if err != nil {
		utils.FlashError(c, "Spare part not found")
		c.Redirect(http.StatusFound, "/spare-parts")
		return
	}

	if !part.OwnedBy(user.ID) {
		utils.FlashError(c, "You can only edit your own spare parts")
		c.Redirect(http.StatusFound, "/spare-parts")
		return
	}

	partLocations, carTypes, err := sc.loadFormCatalog()
	if err != nil {
		logrus.WithError(err).Error("failed to load edit form catalog")
		utils.FlashError(c, "Error loading edit form")
		c.Redirect(http.StatusFound, "/spare-parts")
		return
	}

	var carModels []models.CarModel
	if err := sc.db.Where("car_type_id = ?", part.CarTypeID).Order("name ASC").Find(&carModels).Error; err != nil {
		logrus.WithError(err).Error("failed to load car models")
	}

	utils.Render(c, http.StatusOK, "spare-parts/edit.html", gin.H{
		"title":         "Edit Spare Part",
		"sparePart":     part,
		"partLocations": partLocations,
		"carTypes":      carTypes,
		"carModels":     carModels,
	})
}

func (sc *SparePartController) Update(c *gin.Context) {
	user := utils.CurrentUser(c)
	partID := c.Param("id")

	part, err := sc.repo.FindByID(partID)
	if err != nil {
		utils.FlashError(c, "Spare part not found")
		c.Redirect(http.StatusFound, "/spare-parts")
		return
	}

	if !part.OwnedBy(user.ID) {
		utils.FlashError(c, "You can only edit your own spare parts")
		c.Redirect(http.StatusFound, "/spare-parts")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	partLocationID := c.PostForm("part_location")
	carTypeID := c.PostForm("car_type")
	carModelID := c.PostForm("car_model")
	price, priceOK := utils.ParsePrice(c.PostForm("price"))

	if name == "" || partLocationID == "" || carTypeID == "" || carModelID == "" || !priceOK {
		utils.FlashError(c, "Please fill in all required fields")
		c.Redirect(http.StatusFound, "/spare-parts/"+partID+"/edit")
		return
	}

	updates := map[string]interface{}{
		"name":             name,
		"description":      strings.TrimSpace(c.PostForm("description")),
		"part_location_id": partLocationID,
		"car_type_id":      carTypeID,
		"car_model_id":     carModelID,
		"price":            price,
	}

	// Image replace: write the new blob first so a failed upload never
	// loses the existing image
	oldImage := part.Image
	replacedImage := false
	if file, err := c.FormFile("image"); err == nil && file != nil {
		key, err := sc.storeUpload(c, file)
		if err != nil {
			logrus.WithError(err).Error("failed to store part image")
			utils.FlashError(c, "Error uploading image. Please try again.")
			c.Redirect(http.StatusFound, "/spare-parts/"+partID+"/edit")
			return
		}
		updates["image"] = key
		replacedImage = true
	}

	if err := sc.db.Model(&models.SparePart{}).Where("id = ?", partID).Updates(updates).Error; err != nil {
		logrus.WithError(err).Error("failed to update spare part")
		utils.FlashError(c, "Error updating spare part. Please try again.")
		c.Redirect(http.StatusFound, "/spare-parts/"+partID+"/edit")
		return
	}

	if replacedImage && oldImage != "" {
		if err := sc.blobs.Delete(c.Request.Context(), oldImage); err != nil {
			logrus.WithError(err).WithField("key", oldImage).Warn("failed to delete replaced image blob")
		}
	}

	utils.FlashSuccess(c, "Spare part updated successfully!")
	c.Redirect(http.StatusFound, "/spare-parts/"+partID)
}

// Delete removes a part. Owners may delete their own parts, admins anyone's.
func (sc *SparePartController) Delete(c *gin.Context) {
	user := utils.CurrentUser(c)

	part, err := sc.repo.FindByID(c.Param("id"))
	if err != nil {
		utils.FlashError(c, "Spare part not found")
		c.Redirect(http.StatusFound, "/spare-parts")
		return
	}

	if !part.OwnedBy(user.ID) && !user.IsAdmin() {
		utils.FlashError(c, "You can only delete your own spare parts")
		c.Redirect(http.StatusFound, "/spare-parts")
		return
	}

	if err := sc.repo.DeleteWithImage(c.Request.Context(), part); err != nil {
		logrus.WithError(err).Error("failed to delete spare part")
		utils.FlashError(c, "Error deleting spare part. Please try again.")
		c.Redirect(http.StatusFound, "/spare-parts")
		return
	}

	utils.FlashSuccess(c, "Spare part deleted successfully!")
	c.Redirect(http.StatusFound, "/spare-parts")
}

func (sc *SparePartController) loadFormCatalog() ([]models.PartLocation, []models.CarType, error) {
	var partLocations []models.PartLocation
	if err := sc.db.Order("name ASC").Find(&partLocations).Error; err != nil {
		return nil, nil, err
	}

	var carTypes []models.CarType
	if err := sc.db.Order("name ASC").Find(&carTypes).Error; err != nil {
		return nil, nil, err
	}

	return partLocations, carTypes, nil
}

func (sc *SparePartController) storeUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := storage.NewKey(file.Filename)
	contentType := file.Header.Get("Content-Type")
	if err := sc.blobs.Put(c.Request.Context(), key, src, file.Size, contentType); err != nil {
		return "", err
	}
	return key, nil
}
