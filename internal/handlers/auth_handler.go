package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/config"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/repository"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/services"
)

type AuthHandler struct {
	accounts repository.AccountRepository
	resets   repository.PasswordResetRepository
	mailer   services.EmailSender
	cfg      *config.Config
	v        *validator.Validate
}

func NewAuthHandler(db *sql.DB, cfg *config.Config, mailer services.EmailSender) *AuthHandler {
	return &AuthHandler{
		accounts: repository.NewAccountRepository(db),
		resets:   repository.NewPasswordResetRepository(db),
		mailer:   mailer,
		cfg:      cfg,
		v:        validator.New(),
	}
}

// account is the role-independent slice of a brand, creator or admin row that
// login and password reset need.
type account struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	ProfileCompleted *bool
}

func (h *AuthHandler) lookupByEmail(r *http.Request, role models.Role, email string) (*account, error) {
	switch role {
	case models.RoleBrand:
		b, err := h.accounts.GetBrandByEmail(r.Context(), email)
		if err != nil {
			return nil, err
		}
		return &account{ID: b.ID, Username: b.Username, Email: b.Email, PasswordHash: b.PasswordHash}, nil
	case models.RoleCreator:
		c, err := h.accounts.GetCreatorByEmail(r.Context(), email)
		if err != nil {
			return nil, err
		}
		return &account{ID: c.ID, Username: c.Username, Email: c.Email, PasswordHash: c.PasswordHash, ProfileCompleted: &c.ProfileCompleted}, nil
	default:
		a, err := h.accounts.GetAdminByEmail(r.Context(), email)
		if err != nil {
			return nil, err
		}
		return &account{ID: a.ID, Username: a.Username, Email: a.Email, PasswordHash: a.PasswordHash}, nil
	}
}

// Register creates an account in the table matching the requested role.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	// One email may hold one account across all three role tables.
	role := models.Role(req.Role)
	for _, existing := range []models.Role{models.RoleBrand, models.RoleCreator, models.RoleAdmin} {
		exists, err := h.accounts.EmailExists(r.Context(), existing, req.Email)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "registration_failed", "Failed to register")
			return
		}
		if exists {
			writeJSONError(w, http.StatusBadRequest, "email_taken", "An account with this email already exists")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "registration_failed", "Failed to register")
		return
	}

	id := uuid.NewString()
	switch role {
	case models.RoleBrand:
		err = h.accounts.CreateBrand(r.Context(), &models.Brand{ID: id, Username: req.Username, Email: req.Email, PasswordHash: string(hash)})
	case models.RoleCreator:
		err = h.accounts.CreateCreator(r.Context(), &models.Creator{ID: id, Username: req.Username, Email: req.Email, PasswordHash: string(hash)})
	default:
		err = h.accounts.CreateAdmin(r.Context(), &models.Admin{ID: id, Username: req.Username, Email: req.Email, PasswordHash: string(hash)})
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "registration_failed", "Failed to register")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       id,
		"username": req.Username,
		"email":    req.Email,
		"role":     req.Role,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	acc, err := h.lookupByEmail(r, models.Role(req.Role), req.Email)
	if err != nil {
		if h.cfg.AuthVerboseErrors {
			writeJSONError(w, http.StatusUnauthorized, "invalid_email", "No account found for this email and role")
			return
		}
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		if h.cfg.AuthVerboseErrors {
			writeJSONError(w, http.StatusUnauthorized, "invalid_password", "Password is incorrect")
			return
		}
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	expiresIn := h.cfg.JWTExpiresInSeconds
	if expiresIn <= 0 {
		expiresIn = 86400
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  acc.ID,
		"role": req.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Duration(expiresIn) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "login_failed", "Failed to login")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		AccessToken:      signed,
		Role:             req.Role,
		Username:         acc.Username,
		UserID:           acc.ID,
		ProfileCompleted: acc.ProfileCompleted,
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	// Always return 200 to avoid account enumeration
	acc, err := h.lookupByEmail(r, models.Role(req.Role), req.Email)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	rawToken, tokenHash, err := generateResetToken()
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	prt := &models.PasswordResetToken{
		ID:          uuid.NewString(),
		AccountID:   acc.ID,
		AccountRole: models.Role(req.Role),
		TokenHash:   tokenHash,
		ExpiresAt:   time.Now().UTC().Add(30 * time.Minute),
	}
	_ = h.resets.Create(r.Context(), prt)

	subject := "Reset your password"
	body := "Use this token to reset your password:\n\n" + rawToken + "\n\nThis token expires in 30 minutes."
	_ = h.mailer.Send(acc.Email, subject, body)

	resp := map[string]any{"ok": true}
	if h.cfg.AuthReturnResetToken {
		resp["token"] = rawToken
		resp["expires_in_seconds"] = int64(1800)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	hash := sha256.Sum256([]byte(req.Token))
	tokenHash := hex.EncodeToString(hash[:])

	token, err := h.resets.GetValidByTokenHash(r.Context(), tokenHash)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_token", "Invalid or expired token")
		return
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	if err := h.accounts.UpdatePasswordHash(r.Context(), token.AccountRole, token.AccountID, string(pwHash)); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	_ = h.resets.MarkUsed(r.Context(), token.ID, time.Now().UTC())
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Password reset successful",
	})
}

func generateResetToken() (rawToken string, tokenHash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	rawToken = hex.EncodeToString(b)
	h := sha256.Sum256([]byte(rawToken))
	tokenHash = hex.EncodeToString(h[:])
	return rawToken, tokenHash, nil
}
