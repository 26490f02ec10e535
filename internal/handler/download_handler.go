package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"media-shop-server/internal/apperror"
	"media-shop-server/internal/model/requestresponse"
	"media-shop-server/internal/ports"
	"media-shop-server/internal/security"
	"media-shop-server/internal/util"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
)

type DownloadHandler struct {
	ports.DownloadService
}

func NewDownloadHandler(downloadService ports.DownloadService) *DownloadHandler {
	return &DownloadHandler{downloadService}
}

// Download godoc
// @Summary Загрузка купленного продукта
// @Description Отдает файл с водяным знаком по одноразовой ссылке.
// Набор продуктов отдается одним zip-архивом. Параметр format меняет
// формат изображения (jpg/png/tiff)
// @Tags Downloads
// @Produce octet-stream
// @Param url path string true "Ссылка на загрузку"
// @Param format query string false "Запрошенный формат" example(png)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {file} binary "Файл продукта или zip-архив"
// @Failure 400 {object} requestresponse.ErrorResponse "Ссылка использована, истекла или формат недопустим"
// @Failure 403 {object} requestresponse.ErrorResponse "Нет прав на загрузку"
// @Failure 404 {object} requestresponse.ErrorResponse "Ссылка не найдена"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/downloads/{url} [get]
func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := ctx.Value(security.UserContextKey).(*security.Claims)
	if !ok || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	downloadURL := chi.URLParam(r, "url")
	if downloadURL == "" {
		sendErrorResponse(w, 400, "ссылка обязательна")
		return
	}

	requestedFormat := r.URL.Query().Get("format")

	file, err := h.DownloadService.Fulfill(ctx, downloadURL, claims.UserUUID, requestedFormat)
	if err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}
	// временный файл живет только на время ответа
	defer func() {
		if err := os.Remove(file.FilePath); err != nil && !os.IsNotExist(err) {
			log.Printf("[DownloadHandler] не удалось удалить временный файл %s: %v", file.FilePath, err)
		}
	}()

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	http.ServeFile(w, r, file.FilePath)
}

// ListDownloads godoc
// @Summary Ссылки на загрузку текущего пользователя
// @Tags Downloads
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListDownloadsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/downloads [get]
func (h *DownloadHandler) ListDownloads(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, ok := ctx.Value(security.UserContextKey).(*security.Claims)
	if !ok || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	details, err := h.DownloadService.ListUserDownloads(ctx, claims.UserUUID)
	if err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}

	resp := requestresponse.ListDownloadsResponse{
		Data:  make([]requestresponse.DownloadLinkResponse, 0, len(details)),
		Count: len(details),
	}
	for i := range details {
		resp.Data = append(resp.Data, requestresponse.DownloadLinkResponseFromModel(details[i].Download))
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}
