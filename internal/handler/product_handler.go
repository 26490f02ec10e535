package handler

import (
	"encoding/json"
	"log"
	"media-shop-server/internal/apperror"
	"media-shop-server/internal/model"
	"media-shop-server/internal/model/requestresponse"
	"media-shop-server/internal/ports"
	"media-shop-server/internal/security"
	"media-shop-server/internal/util"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService}
}

// ListProducts godoc
// @Summary Каталог продуктов
// @Description Выборка каталога с фильтрами по типу, году и формату
// @Tags Products
// @Produce json
// @Param type query string false "Тип продукта" example(historical_cartography)
// @Param year query int false "Год" example(1745)
// @Param format query string false "Формат мастер-файла" example(tiff)
// @Success 200 {object} requestresponse.ListProductsResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	filter := model.ProductFilter{
		Type:   model.ProductType(r.URL.Query().Get("type")),
		Format: model.FormatType(r.URL.Query().Get("format")),
	}
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			sendErrorResponse(w, 400, "некорректный год")
			return
		}
		filter.Year = year
	}

	products, err := h.ProductService.ListProducts(ctx, filter)
	if err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}

	resp := requestresponse.ListProductsResponse{
		Data:  make([]requestresponse.ProductResponse, 0, len(products)),
		Count: len(products),
	}
	for i := range products {
		resp.Data = append(resp.Data, requestresponse.ProductResponseFromModel(&products[i]))
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetProduct godoc
// @Summary Один продукт каталога
// @Tags Products
// @Produce json
// @Param id path int true "ID продукта"
// @Success 200 {object} requestresponse.ProductResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, 400, "некорректный id продукта")
		return
	}

	product, err := h.ProductService.GetProduct(ctx, id)
	if err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ProductResponseFromModel(product))
}

// CreateProduct godoc
// @Summary Создание продукта
// @Description Сохраняет продукт и возвращает pre-signed URL для загрузки мастер-файла; только для администратора
// @Tags Products
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateProductRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <admin_token>)
// @Success 201 {object} requestresponse.CreateProductResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if !requireAdmin(w, r) {
		return
	}

	var req requestresponse.CreateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	product := &model.Product{
		Title:  req.Title,
		Type:   model.ProductType(req.Type),
		Year:   req.Year,
		Format: model.FormatType(req.Format),
		Cost:   req.Cost,
	}

	created, uploadURL, err := h.ProductService.CreateProduct(ctx, product)
	if err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}

	w.WriteHeader(201)
	json.NewEncoder(w).Encode(requestresponse.CreateProductResponse{
		Product:   requestresponse.ProductResponseFromModel(created),
		UploadURL: uploadURL,
	})
}

// DeleteProduct godoc
// @Summary Удаление продукта
// @Description Удаляет продукт, его мастер-файл и запись кэша; только для администратора
// @Tags Products
// @Produce json
// @Param id path int true "ID продукта"
// @Param Authorization header string true "Bearer токен" default(Bearer <admin_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if !requireAdmin(w, r) {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, 400, "некорректный id продукта")
		return
	}

	if err := h.ProductService.DeleteProduct(ctx, id); err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "продукт удален"})
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if !ok || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return false
	}
	if !claims.IsAdmin {
		sendErrorResponse(w, 403, "доступ запрещен")
		return false
	}
	return true
}
