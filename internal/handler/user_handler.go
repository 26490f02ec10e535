package handler

import (
	"encoding/json"
	"log"
	"media-shop-server/internal/apperror"
	"media-shop-server/internal/model/requestresponse"
	"media-shop-server/internal/ports"
	"media-shop-server/internal/util"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// RegisterUser godoc
// @Summary Регистрация нового пользователя
// @Description Создает пользователя и сразу выдает пару токенов
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} requestresponse.TokensResponse "Пользователь создан"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный email или слабый пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/user/register [post]
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		sendErrorResponse(w, 400, "email и password обязательны")
		return
	}

	tokens, err := h.UserService.Register(ctx, req.Email, req.Password, r.UserAgent(), r.RemoteAddr)
	if err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}

	resp := requestresponse.TokensResponse{}
	resp.Response.AccessToken = tokens.AccessToken
	resp.Response.RefreshToken = tokens.RefreshToken

	w.WriteHeader(201)
	json.NewEncoder(w).Encode(resp)
}

// GetUser godoc
// @Summary Профиль пользователя
// @Description Возвращает профиль; доступен владельцу и администратору
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/user/{uuid} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	uuid := chi.URLParam(r, "uuid")
	if uuid == "" {
		sendErrorResponse(w, 400, "uuid обязателен")
		return
	}

	user, err := h.UserService.GetUser(ctx, uuid)
	if err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.UserResponseFromModel(user))
}

// GetBalance godoc
// @Summary Баланс токенов пользователя
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.BalanceResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/user/{uuid}/balance [get]
func (h *UserHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	uuid := chi.URLParam(r, "uuid")
	if uuid == "" {
		sendErrorResponse(w, 400, "uuid обязателен")
		return
	}

	balance, err := h.UserService.GetBalance(ctx, uuid)
	if err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.BalanceResponse{UUID: uuid, Tokens: balance})
}

// UpdateBalance godoc
// @Summary Пополнение баланса токенов
// @Description Устанавливает новый баланс; доступно только администратору
// @Tags Users
// @Accept json
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param body body requestresponse.UpdateBalanceRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <admin_token>)
// @Success 200 {object} requestresponse.BalanceResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/user/{uuid}/balance [put]
func (h *UserHandler) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	uuid := chi.URLParam(r, "uuid")
	if uuid == "" {
		sendErrorResponse(w, 400, "uuid обязателен")
		return
	}

	var req requestresponse.UpdateBalanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	balance, err := h.UserService.UpdateBalance(ctx, uuid, req.Tokens)
	if err != nil {
		log.Println(err)
		util.HandleError(w, apperror.Message(err), apperror.HTTPStatus(err))
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.BalanceResponse{UUID: uuid, Tokens: balance})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return err
	}
	return nil
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	util.HandleError(w, message, statusCode)
}
