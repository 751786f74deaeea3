package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"atuna_estate/internal/models"
	"atuna_estate/internal/services"
	"atuna_estate/internal/store"
)

// createPropertyInput accepts listing fields plus an optional GeoJSON
// geometry, which is stored as WKB.
type createPropertyInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Status      string  `json:"status"`
	OwnerID     *string `json:"owner_id"`
	Geometry    string  `json:"geometry"`
	ARModelURL  string  `json:"ar_model_url"`
}

type updatePropertyInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Location    *string  `json:"location"`
	Type        *string  `json:"type"`
	Status      *string  `json:"status"`
	Geometry    *string  `json:"geometry"`
	ARModelURL  *string  `json:"ar_model_url"`
}

// propertyView is the API shape of a property: the stored WKB is rendered
// back to GeoJSON.
type propertyView struct {
	models.Property
	Geometry string `json:"geometry,omitempty"`
}

func viewProperty(p *models.Property) propertyView {
	geometry, err := services.ConvertWKBToGeoJSON(p.Geometry)
	if err != nil {
		logrus.WithError(err).WithField("property_id", p.ID).Warn("Stored geometry failed to decode")
	}
	return propertyView{Property: *p, Geometry: geometry}
}

// CreateProperty creates a listing. Agents always own what they create.
func CreateProperty(c *gin.Context) {
	var input createPropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	wkbBytes, err := services.ParseGeoJSONToWKB(input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid GeoJSON geometry: " + err.Error()})
		return
	}

	property := models.Property{
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Location:    input.Location,
		Type:        input.Type,
		Status:      input.Status,
		Geometry:    wkbBytes,
		ARModelURL:  input.ARModelURL,
	}
	if err := accessSvc.CreateProperty(actorFrom(c), &property); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"property": viewProperty(&property)})
}

// GetProperty returns one listing by id. Public to any authenticated role.
func GetProperty(c *gin.Context) {
	property, err := accessSvc.GetProperty(actorFrom(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": viewProperty(property)})
}

// ListProperties returns a page of listings, optionally filtered by owner,
// type, or status query params.
func ListProperties(c *gin.Context) {
	offset, limit := pageParams(c)
	filter := store.PropertyFilter{
		OwnerID: c.Query("owner_id"),
		Type:    c.Query("type"),
		Status:  c.Query("status"),
	}
	properties, err := accessSvc.ListProperties(actorFrom(c), filter, offset, limit)
	if err != nil {
		respondErr(c, err)
		return
	}

	views := make([]propertyView, 0, len(properties))
	for i := range properties {
		views = append(views, viewProperty(&properties[i]))
	}
	c.JSON(http.StatusOK, gin.H{"properties": views})
}

// UpdateProperty applies a partial update to a listing.
func UpdateProperty(c *gin.Context) {
	var input updatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	patch := store.PropertyPatch{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Location:    input.Location,
		Type:        input.Type,
		Status:      input.Status,
		ARModelURL:  input.ARModelURL,
	}
	if input.Geometry != nil {
		wkbBytes, err := services.ParseGeoJSONToWKB(*input.Geometry)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid GeoJSON geometry: " + err.Error()})
			return
		}
		patch.Geometry = wkbBytes
	}

	property, err := accessSvc.UpdateProperty(actorFrom(c), c.Param("id"), patch)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": viewProperty(property)})
}

// DeleteProperty removes a listing and its contracts.
func DeleteProperty(c *gin.Context) {
	if err := accessSvc.DeleteProperty(actorFrom(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted."})
}

// GenerateDescription asks the AI service for listing copy and saves it on
// the property. Authorization is checked before the model is invoked so a
// denied caller never spends AI tokens.
func GenerateDescription(c *gin.Context) {
	actor := actorFrom(c)
	property, err := accessSvc.AuthorizePropertyUpdate(actor, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	description, err := ai.GeneratePropertyDescription(c.Request.Context(), property)
	if err != nil {
		logrus.WithError(err).Error("AI description generation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Description generation failed."})
		return
	}

	updated, err := accessSvc.UpdateProperty(actor, property.ID, store.PropertyPatch{Description: &description})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": viewProperty(updated), "description": description})
}

// ARView returns the AR scene configuration for a listing, building and
// caching it on first request.
func ARView(c *gin.Context) {
	actor := actorFrom(c)
	property, err := accessSvc.GetProperty(actor, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	if property.ARSceneConfig == "" {
		scene, err := services.GenerateARSceneConfig(property)
		if err != nil {
			logrus.WithError(err).Error("AR scene generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "AR scene generation failed."})
			return
		}
		// Cache the scene directly; viewing a listing must not require
		// update rights on it.
		if _, err := entities.UpdateProperty(property.ID, store.PropertyPatch{ARSceneConfig: &scene}); err != nil {
			logrus.WithError(err).Warn("Failed to cache AR scene config")
		}
		property.ARSceneConfig = scene
	}

	c.JSON(http.StatusOK, gin.H{
		"property_id":  property.ID,
		"scene_config": property.ARSceneConfig,
		"model_url":    property.ARModelURL,
	})
}
