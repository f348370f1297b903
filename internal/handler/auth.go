package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/villa-booking/internal/config"
    "github.com/iliyamo/villa-booking/internal/middleware"
    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/repository"
    "github.com/iliyamo/villa-booking/internal/utils"
)

type UserStore interface {
    GetByUsername(ctx context.Context, username string) (model.User, error)
    GetByID(ctx context.Context, id uint64) (model.User, error)
}

type TokenStore interface {
    StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
    ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
    RevokeByHash(ctx context.Context, tokenHash string) error
    RevokeAllForUser(ctx context.Context, userID uint64) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Cfg    config.Config
    Users  UserStore
    Tokens TokenStore
}

func NewAuthHandler(cfg config.Config, u UserStore, t TokenStore) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type loginReq struct {
    Username string `json:"username" validate:"required,notblank"`
    Password string `json:"password" validate:"required"`
}
type refreshReq struct {
    RefreshToken string `json:"refresh_token"`
}
type verifyReq struct {
    Token string `json:"token"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}
type userPart struct {
    ID       uint64 `json:"id"`
    Username string `json:"username"`
    Role     string `json:"role"`
}
type authResp struct {
    User    userPart  `json:"user"`
    Access  tokenPart `json:"access"`
    Refresh tokenPart `json:"refresh"`
}

var (
    errInvalidCredentials = echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
    errInvalidRefresh     = echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
)

// revokeRefresh ends the session behind hash.  A token revoked by a
// concurrent request counts as invalid.
func (h *AuthHandler) revokeRefresh(ctx context.Context, hash string) error {
    err := h.Tokens.RevokeByHash(ctx, hash)
    if errors.Is(err, repository.ErrNotFound) {
        return errInvalidRefresh
    }
    return err
}

// issue signs an access token and stores a fresh refresh token for u.
func (h *AuthHandler) issue(ctx context.Context, u model.User) (authResp, error) {
    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, u.Role, h.Cfg.AccessTTLMin)
    if err != nil {
        return authResp{}, err
    }
    refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
    if err != nil {
        return authResp{}, err
    }
    if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
        return authResp{}, err
    }
    return authResp{
        User:    userPart{ID: u.ID, Username: u.Username, Role: u.Role},
        Access:  tokenPart{Token: access.Token, Expires: access.Exp},
        Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
    }, nil
}

// Login: verify username/password against users and return a token pair.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := bind(c, &req); err != nil {
        return err
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    u, err := h.Users.GetByUsername(ctx, req.Username)
    if errors.Is(err, repository.ErrNotFound) {
        utils.VerifyPassword("", req.Password)
        return errInvalidCredentials
    }
    if err != nil {
        return err
    }
    if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return errInvalidCredentials
    }

    resp, err := h.issue(ctx, u)
    if err != nil {
        return err
    }
    return utils.JSONSuccess(c, http.StatusOK, resp)
}

// Verify checks the signature and expiry of a token taken from the body
// or, failing that, the Authorization header.
func (h *AuthHandler) Verify(c echo.Context) error {
    var req verifyReq
    _ = decode(c, &req)
    raw := strings.TrimSpace(req.Token)
    if raw == "" {
        raw = middleware.BearerToken(c)
    }
    claims, err := utils.ParseAccessToken(h.Cfg.JWTSecret, raw)
    if err != nil {
        return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
    }
    return utils.JSONSuccess(c, http.StatusOK, echo.Map{
        "valid":   true,
        "user":    userPart{ID: claims.UserID, Username: claims.Username, Role: claims.Role},
        "expires": claims.Exp,
    })
}

// Refresh: validate by hash, revoke old, issue new.
func (h *AuthHandler) Refresh(c echo.Context) error {
    var req refreshReq
    if err := decode(c, &req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
        return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields: refresh_token")
    }
    hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

    ctx, cancel := reqCtx(c)
    defer cancel()

    userID, err := h.Tokens.ValidateRefresh(ctx, hash)
    if errors.Is(err, repository.ErrNotFound) {
        return errInvalidRefresh
    }
    if err != nil {
        return err
    }
    if err := h.revokeRefresh(ctx, hash); err != nil {
        return err
    }

    u, err := h.Users.GetByID(ctx, userID)
    if errors.Is(err, repository.ErrNotFound) || (err == nil && !u.IsActive) {
        return errInvalidRefresh
    }
    if err != nil {
        return err
    }

    resp, err := h.issue(ctx, u)
    if err != nil {
        return err
    }
    return utils.JSONSuccess(c, http.StatusOK, resp)
}

// Logout revokes the refresh token in the body, or every refresh token of
// the bearer's user when the body carries none.
func (h *AuthHandler) Logout(c echo.Context) error {
    var req refreshReq
    _ = decode(c, &req)
    refreshToken := strings.TrimSpace(req.RefreshToken)

    ctx, cancel := reqCtx(c)
    defer cancel()

    if refreshToken != "" {
        hash := utils.HashRefreshRaw(refreshToken)
        if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
            return errInvalidRefresh
        }
        if err := h.revokeRefresh(ctx, hash); err != nil {
            return err
        }
        return utils.JSONMessage(c, http.StatusOK, nil, "Logged out")
    }

    if raw := middleware.BearerToken(c); raw != "" {
        claims, err := utils.ParseAccessToken(h.Cfg.JWTSecret, raw)
        if err != nil {
            return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
        }
        if err := h.Tokens.RevokeAllForUser(ctx, claims.UserID); err != nil {
            return err
        }
        return utils.JSONMessage(c, http.StatusOK, nil, "Logged out of all sessions")
    }
    return echo.NewHTTPError(http.StatusBadRequest, "Provide an Authorization header or refresh_token")
}

// Me echoes the identity JWTAuth stored in the context.
func (h *AuthHandler) Me(c echo.Context) error {
    return utils.JSONSuccess(c, http.StatusOK, echo.Map{
        "user_id":  c.Get(middleware.CtxUserID),
        "username": c.Get(middleware.CtxUsername),
        "role":     c.Get(middleware.CtxRole),
    })
}
