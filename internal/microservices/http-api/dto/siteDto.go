package dto

import "bloghub/internal/microservices/http-api/models"

type SiteInfoResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ICP         string `json:"icp"`
	Footer      string `json:"footer"`
}

func FromModelToSiteInfoResponse(info *models.SiteInfo) *SiteInfoResponse {
	return &SiteInfoResponse{
		Title:       info.Title,
		Description: info.Description,
		ICP:         info.ICP,
		Footer:      info.Footer,
	}
}

type MenuResponse struct {
	Title string  `json:"title"`
	Path  *string `json:"path"`
	URL   *string `json:"url"`
}

type MenuListResponse struct {
	Menus []MenuResponse `json:"menus"`
}

func FromModelsToMenuList(menus []models.Menu) *MenuListResponse {
	out := &MenuListResponse{Menus: make([]MenuResponse, 0, len(menus))}
	for _, m := range menus {
		out.Menus = append(out.Menus, MenuResponse{Title: m.Title, Path: m.Path, URL: m.URL})
	}
	return out
}
