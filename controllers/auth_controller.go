package controllers

import (
	"errors"
	"net/http"

	"TaskNestGo/middleware"
	"TaskNestGo/models"
	"TaskNestGo/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AuthController 认证控制器
type AuthController struct {
	auth         *services.AuthService
	logger       *zap.SugaredLogger
	cookieMaxAge int
	cookieSecure bool
}

// NewAuthController 创建认证控制器，cookieMaxAge单位为秒
func NewAuthController(auth *services.AuthService, logger *zap.SugaredLogger, cookieMaxAge int, cookieSecure bool) *AuthController {
	return &AuthController{
		auth:         auth,
		logger:       logger,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

// bindingErrors 把验证错误整理成字段级提示
func bindingErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "请求体格式错误"}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

// Register 用户注册，成功后直接建立会话
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效", "fields": bindingErrors(err)})
		return
	}

	user, token, err := ac.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": "用户名已存在"})
			return
		}
		ac.logger.Errorw("用户注册失败", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注册失败"})
		return
	}

	ac.setSessionCookie(c, token)
	ac.logger.Infow("用户注册成功", "userID", user.ID, "username", user.Username)
	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Login 用户登录
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效", "fields": bindingErrors(err)})
		return
	}

	user, token, err := ac.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "用户名或密码错误"})
			return
		}
		ac.logger.Errorw("用户登录失败", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败"})
		return
	}

	ac.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Logout 退出登录。幂等：无会话时同样返回成功并清除Cookie
func (ac *AuthController) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := ac.auth.Logout(c.Request.Context(), token); err != nil {
			ac.logger.Errorw("销毁会话失败", "error", err)
		}
	}

	ac.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

// GetUser 返回当前会话对应的用户
func (ac *AuthController) GetUser(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookieName)
	user, err := ac.auth.CurrentUser(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
			return
		}
		ac.logger.Errorw("查询当前用户失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询用户失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
	})
}

func (ac *AuthController) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, ac.cookieMaxAge, "/", "", ac.cookieSecure, true)
}

func (ac *AuthController) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", ac.cookieSecure, true)
}
