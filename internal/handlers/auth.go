package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/middleware"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/utils"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request. Registration creates
// the company (tenant) together with its first admin user.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// login handles user login
func (rt *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var user models.User
	if err := rt.db.Where("email = ?", loginReq.Email).First(&user).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPasswordHash(loginReq.Password, user.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	rt.db.Save(&user)

	accessToken, refreshToken, err := utils.GenerateTokens(&user, rt.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": user,
	})
}

// register creates a company and its first admin user
func (rt *Router) register(w http.ResponseWriter, req *http.Request) {
	var regReq RegisterRequest
	if err := json.NewDecoder(req.Body).Decode(&regReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if regReq.Email == "" || regReq.Password == "" || regReq.CompanyName == "" {
		respondError(w, http.StatusBadRequest, "Email, password and company name are required")
		return
	}

	hashedPassword, err := utils.HashPassword(regReq.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	company := models.Company{Name: regReq.CompanyName}
	if err := rt.db.Create(&company).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create company")
		return
	}

	user := models.User{
		Username:  regReq.Username,
		Email:     regReq.Email,
		Password:  hashedPassword,
		Name:      regReq.Name,
		Role:      "admin",
		CompanyID: company.ID,
	}
	if err := rt.db.Create(&user).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create user (email or username might exist)")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&user, rt.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "User created but failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user":    user,
		"company": company,
	})
}

// refresh exchanges a refresh token for a fresh token pair
func (rt *Router) refresh(w http.ResponseWriter, req *http.Request) {
	var refreshReq RefreshRequest
	if err := json.NewDecoder(req.Body).Decode(&refreshReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	claims, err := utils.ValidateToken(refreshReq.RefreshToken, rt.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	userID, _ := claims["id"].(string)
	var user models.User
	if err := rt.db.First(&user, "id = ?", userID).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Unknown user")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&user, rt.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// currentUser returns the acting user with permissions preloaded
func (rt *Router) currentUser(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserID(req.Context())

	var user models.User
	if err := rt.db.Preload("Permissions").Preload("Company").First(&user, "id = ?", userID).Error; err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
