// Package pages serves admin-managed static content and the storefront menu.
package pages

import (
	"context"
	"log"
	"net/http"
	"time"

	"calyx/faults"
	"calyx/repo"
	"calyx/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetPage handles GET /api/page/:slug. Disabled pages 404.
func GetPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page, err := repo.Pages().FindOne(ctx, bson.M{
		"pageSlug":    ps.ByName("slug"),
		"pageEnabled": true,
	})
	if err != nil {
		log.Println("GetPage error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not retrieve the page")
		return
	}
	if page == nil {
		utils.RespondWithFault(w, faults.ErrNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"page": page})
}

// GetMenu handles GET /api/menu, sorted by the admin-assigned order.
func GetMenu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := repo.Menu().FindMany(ctx, bson.M{}, bson.M{"order": 1}, 0)
	if err != nil {
		log.Println("GetMenu error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not retrieve the menu")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"menu": items})
}
