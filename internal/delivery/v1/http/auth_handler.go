package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authUC usecase.AuthUC
	logger logger.Logger
}

func NewAuthHandler(authUC usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUC: authUC, logger: logger}
}

// signUp
//
//	@Summary	Регистрация
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		SignUpRequest	true	"Данные пользователя"
//	@Success	201		{object}	AuthResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse	"Email уже зарегистрирован"
//	@Router		/auth/signup [post]
func (h *AuthHandler) signUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.authUC.SignUp(r.Context(), &usecase.SignUpReq{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		h.logger.Warnf("sign up: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, &AuthResponse{Token: res.Token, User: toUserDTO(res.User)})
}

// signIn
//
//	@Summary	Вход
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		SignInRequest	true	"Email и пароль"
//	@Success	200		{object}	AuthResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/auth/signin [post]
func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.authUC.SignIn(r.Context(), &usecase.SignInReq{Email: req.Email, Password: req.Password})
	if err != nil {
		h.logger.Warnf("sign in: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &AuthResponse{Token: res.Token, User: toUserDTO(res.User)})
}

// signOut
//
//	@Summary	Выход
//	@Tags		auth
//	@Security	BearerAuth
//	@Success	204
//	@Router		/auth/signout [post]
func (h *AuthHandler) signOut(w http.ResponseWriter, r *http.Request) {
	if err := h.authUC.SignOut(r.Context(), tokenFromCtx(r.Context())); err != nil {
		h.logger.Errorf(err, "sign out failed")
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// me
//
//	@Summary	Текущий пользователь
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	UserDTO
//	@Failure	401	{object}	ErrorResponse
//	@Router		/auth/me [get]
func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	user := userFromCtx(r.Context())
	if user == nil {
		WriteError(w, e.ErrUnauthorized)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserDTO(user))
}

// getProfile
//
//	@Summary	Профиль текущего пользователя
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	ProfileDTO
//	@Failure	401	{object}	ErrorResponse
//	@Router		/auth/me/profile [get]
func (h *AuthHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromCtx(r.Context())
	if user == nil {
		WriteError(w, e.ErrUnauthorized)
		return
	}

	profile, err := h.authUC.GetProfile(r.Context(), user.ID)
	if err != nil {
		h.logger.Errorf(err, "failed to load profile")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProfileDTO(profile))
}

// updateProfile
//
//	@Summary	Сохранить профиль
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		UpdateProfileRequest	true	"Имя и данные доставки"
//	@Success	200		{object}	ProfileDTO
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/auth/me/profile [put]
func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromCtx(r.Context())
	if user == nil {
		WriteError(w, e.ErrUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	updated, err := h.authUC.UpdateProfile(r.Context(), &usecase.UpdateProfileReq{
		UserID:          user.ID,
		FullName:        req.FullName,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		City:            req.City,
		PostalCode:      req.PostalCode,
	})
	if err != nil {
		h.logger.Warnf("update profile: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProfileDTO(updated))
}

// listUsers
//
//	@Summary	Пользователи
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	UserDTO
//	@Router		/admin/users [get]
func (h *AuthHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authUC.ListUsers(r.Context())
	if err != nil {
		h.logger.Errorf(err, "failed to list users")
		WriteError(w, err)
		return
	}

	res := make([]UserDTO, len(users))
	for i := range users {
		res[i] = toUserDTO(&users[i])
	}

	WriteSuccess(w, http.StatusOK, res)
}

// updateRole
//
//	@Summary	Сменить роль пользователя
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"ID пользователя"
//	@Param		body	body		UpdateRoleRequest	true	"admin или user"
//	@Success	200		{object}	UserDTO
//	@Failure	403		{object}	ErrorResponse	"Роль суперадмина не меняется"
//	@Router		/admin/users/{id}/role [put]
func (h *AuthHandler) updateRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	user, err := h.authUC.UpdateUserRole(r.Context(), chi.URLParam(r, "id"), domain.Role(req.Role))
	if err != nil {
		h.logger.Warnf("update role: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserDTO(user))
}

// deleteUser
//
//	@Summary	Удалить пользователя
//	@Tags		admin
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID пользователя"
//	@Success	204
//	@Router		/admin/users/{id} [delete]
func (h *AuthHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.authUC.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Warnf("delete user: %v", err)
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
