package controller

import (
	"net/http"

	"marketplace-backend/auth"
	"marketplace-backend/model"
	"marketplace-backend/usecase"
)

type UserController struct {
	base
	usecase *usecase.UserUsecase
	tokens  *auth.TokenManager
}

func NewUserController(b base, uc *usecase.UserUsecase, tokens *auth.TokenManager) *UserController {
	return &UserController{base: b, usecase: uc, tokens: tokens}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type sessionResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register signs up a new seller. An email that is already registered gets 409.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !c.decode(w, r, &req) {
		return
	}
	user, err := c.usecase.RegisterUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	c.issue(w, r, http.StatusCreated, "Account created", user)
}

func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !c.decode(w, r, &req) {
		return
	}
	user, err := c.usecase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	c.issue(w, r, http.StatusOK, "", user)
}

func (c *UserController) issue(w http.ResponseWriter, r *http.Request, status int, message string, user *model.User) {
	token, err := c.tokens.Issue(user)
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, status, message, sessionResponse{User: user, Token: token})
}
