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

type PurchaseHandler struct {
	ports.PurchaseService
}

func NewPurchaseHandler(purchaseService ports.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService}
}

// CreatePurchase godoc
// @Summary Покупка продуктов за токены
// @Description Списывает токены и создает покупки со ссылкой на загрузку.
// Несколько продуктов в одном запросе образуют набор с общей ссылкой.
// recipient_email превращает покупку в подарок с наценкой
// @Tags Purchases
// @Accept json
// @Produce json
// @Param body body requestresponse.CreatePurchaseRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.CreatePurchaseResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Недостаточно токенов или некорректный запрос"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/purchases [post]
func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, ok := ctx.Value(security.UserContextKey).(*security.Claims)
	if !ok || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.CreatePurchaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	result, err := h.PurchaseService.CreatePurchase(ctx, claims.UserUUID, req.ProductIDs, req.RecipientEmail)
	if err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}

	w.WriteHeader(201)
	json.NewEncoder(w).Encode(requestresponse.CreatePurchaseResponseFromModel(result))
}

// GetPurchase godoc
// @Summary Детали одной покупки
// @Description Покупка вместе с продуктом, покупателем и получателем.
// Доступна покупателю, получателю подарка и администратору
// @Tags Purchases
// @Produce json
// @Param id path int true "ID покупки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.PurchaseDetailsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/purchases/{id} [get]
func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, ok := ctx.Value(security.UserContextKey).(*security.Claims)
	if !ok || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, 400, "некорректный ID покупки")
		return
	}

	details, err := h.PurchaseService.GetDetailsByID(ctx, id)
	if err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}

	isOwner := details.Purchase.BuyerUUID == claims.UserUUID
	isRecipient := details.Purchase.RecipientUUID != nil && *details.Purchase.RecipientUUID == claims.UserUUID
	if !isOwner && !isRecipient && !claims.IsAdmin {
		sendErrorResponse(w, 403, "нет прав на просмотр покупки")
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.PurchaseDetailsResponseFromModel(details))
}

// GetPurchaseHistory godoc
// @Summary История покупок пользователя
// @Description Список покупок текущего пользователя, опционально по типу
// @Tags Purchases
// @Produce json
// @Param type query string false "Тип покупки" example(gift)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.PurchaseHistoryResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/purchases [get]
func (h *PurchaseHandler) GetPurchaseHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, ok := ctx.Value(security.UserContextKey).(*security.Claims)
	if !ok || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	purchaseType := model.PurchaseType(r.URL.Query().Get("type"))

	details, err := h.PurchaseService.GetUserHistory(ctx, claims.UserUUID, purchaseType)
	if err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}

	resp := requestresponse.PurchaseHistoryResponse{
		Data:  make([]requestresponse.PurchaseDetailsResponse, 0, len(details)),
		Count: len(details),
	}
	for i := range details {
		resp.Data = append(resp.Data, requestresponse.PurchaseDetailsResponseFromModel(&details[i]))
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}
