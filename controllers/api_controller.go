package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"spareparts-app/models"
	"spareparts-app/utils"
)

// APIController serves the small JSON endpoints used by the dependent
// dropdowns on the listing forms.
type APIController struct {
	db *gorm.DB
}

func NewAPIController(db *gorm.DB) *APIController {
	return &APIController{db: db}
}

// CarModels returns the models belonging to one car type, sorted by name.
// GET /api/car-models?typeId=...
func (api *APIController) CarModels(c *gin.Context) {
	typeID := c.Query("typeId")
	if typeID == "" {
		utils.SendError(c, http.StatusBadRequest, "Missing typeId parameter")
		return
	}

	var carModels []models.CarModel
	if err := api.db.Where("car_type_id = ?", typeID).Order("name ASC").Find(&carModels).Error; err != nil {
		logrus.WithError(err).Error("failed to fetch car models")
		utils.SendError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, carModels)
}
