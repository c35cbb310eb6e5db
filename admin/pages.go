package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"calyx/faults"
	"calyx/models"
	"calyx/repo"
	"calyx/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type pageBody struct {
	PageName    string `json:"pageName"`
	PageSlug    string `json:"pageSlug"`
	PageContent string `json:"pageContent"`
	PageEnabled bool   `json:"pageEnabled"`
}

func (b *pageBody) validate() error {
	if b.PageName == "" {
		return faults.Invalid("pageName", "is required")
	}
	if b.PageContent == "" {
		return faults.Invalid("pageContent", "is required")
	}
	return nil
}

// ListPages handles GET /api/admin/pages.
func ListPages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pages, err := repo.Pages().FindMany(ctx, bson.M{}, bson.M{"pageName": 1}, 0)
	if err != nil {
		log.Println("ListPages error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error retrieving pages")
		return
	}
	if pages == nil {
		pages = []models.Page{}
	}

	utils.RespondWithJSON(w, http.StatusOK, pages)
}

// SavePage handles POST /api/admin/page. An empty pageId inserts, otherwise
// the page is updated in place.
func SavePage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		pageBody
		PageID string `json:"pageId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("SavePage decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := body.validate(); err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	pageSlug := slug.Make(body.PageSlug)
	if pageSlug == "" {
		pageSlug = slug.Make(body.PageName)
	}

	page := models.Page{
		PageID:      body.PageID,
		PageName:    body.PageName,
		PageSlug:    pageSlug,
		PageContent: utils.CleanHTML(body.PageContent),
		PageEnabled: body.PageEnabled,
	}
	if page.PageID == "" {
		page.PageID = uuid.NewString()
		if err := repo.Pages().Create(ctx, page); err != nil {
			log.Println("SavePage insert error:", err)
			utils.RespondWithError(w, http.StatusBadRequest, "Error saving page")
			return
		}
	} else {
		set := bson.M{
			"pageName":    page.PageName,
			"pageSlug":    page.PageSlug,
			"pageContent": page.PageContent,
			"pageEnabled": page.PageEnabled,
		}
		if err := repo.Pages().UpdateOne(ctx, bson.M{"pageId": page.PageID}, set); err != nil {
			log.Println("SavePage update error:", err)
			utils.RespondWithError(w, http.StatusBadRequest, "Error saving page")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Page saved successfully",
		"page":    page,
	})
}

// DeletePage handles DELETE /api/admin/page/delete/:pageId.
func DeletePage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := repo.Pages().DeleteOne(ctx, bson.M{"pageId": ps.ByName("pageId")}); err != nil {
		log.Println("DeletePage error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error deleting page")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Page successfully deleted"})
}

// CreateMenuItem handles POST /api/admin/menu/new. New items go to the end
// of the menu.
func CreateMenuItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Title string `json:"navMenu"`
		Link  string `json:"navLink"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("CreateMenuItem decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Title == "" || body.Link == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Menu title and link are required")
		return
	}

	count, err := repo.Menu().Count(ctx, bson.M{})
	if err != nil {
		log.Println("CreateMenuItem count error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to create menu item")
		return
	}

	item := models.MenuItem{
		MenuID: uuid.NewString(),
		Title:  body.Title,
		Link:   body.Link,
		Order:  int(count),
	}
	if err := repo.Menu().Create(ctx, item); err != nil {
		log.Println("CreateMenuItem insert error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to create menu item")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Menu created successfully", "menu": item})
}

// UpdateMenuItem handles PUT /api/admin/menu/update.
func UpdateMenuItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		MenuID string `json:"navId"`
		Title  string `json:"navMenu"`
		Link   string `json:"navLink"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("UpdateMenuItem decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{"title": body.Title, "link": body.Link}
	if err := repo.Menu().UpdateOne(ctx, bson.M{"menuId": body.MenuID}, set); err != nil {
		log.Println("UpdateMenuItem error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update menu item")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Menu updated successfully"})
}

// SortMenu handles POST /api/admin/menu/saveOrder with the full list of menu
// ids in their new order.
func SortMenu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Order []string `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("SortMenu decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	for i, menuID := range body.Order {
		if err := repo.Menu().UpdateOne(ctx, bson.M{"menuId": menuID}, bson.M{"order": i}); err != nil {
			log.Println("SortMenu error:", err)
			utils.RespondWithError(w, http.StatusBadRequest, "Failed to save menu order")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Menu order saved"})
}

// DeleteMenuItem handles DELETE /api/admin/menu/delete/:menuId.
func DeleteMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := repo.Menu().DeleteOne(ctx, bson.M{"menuId": ps.ByName("menuId")}); err != nil {
		log.Println("DeleteMenuItem error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to delete menu item")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Menu deleted successfully"})
}
