package go_gin_pages

import (
	"context"
	"fmt"
	"net/http"

	"apartment_rent/types"
	"apartment_rent/utils/errDefs"

	"github.com/gin-gonic/gin"
)

type AccountService interface {
	CreateAccount(ctx context.Context, obj *types.AccountPostData) (*types.Account, error)
	FindAccountByLogin(ctx context.Context, login string) (*types.Account, error)
	ConfirmCredentials(ctx context.Context, login string, password string) (*types.Account, error)
}

// TokenIssuer signs a session token for an account that passed the credential check.
type TokenIssuer interface {
	Issue(account *types.Account) (string, error)
}

type loginResult struct {
	Account *types.Account `json:"account"`
	Token   string         `json:"token,omitempty"`
}

type accountHandler struct {
	svc    AccountService
	tokens TokenIssuer
}

// NewAccountHandler answers logins without a token when tokens is nil.
func NewAccountHandler(svc AccountService, tokens TokenIssuer) *accountHandler {
	return &accountHandler{svc: svc, tokens: tokens}
}

func (ah *accountHandler) PostAccountHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var data types.AccountPostData
		if err := c.ShouldBindJSON(&data); err != nil {
			returnError(c, fmt.Errorf("%w: %v", errDefs.ErrBadRequest, err.Error()))
			return
		}
		account, err := ah.svc.CreateAccount(c.Request.Context(), &data)
		if err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusCreated, account)
	}
}

// LoginHandler checks the Username and Password headers.
func (ah *accountHandler) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := ah.svc.ConfirmCredentials(c.Request.Context(), c.GetHeader("Username"), c.GetHeader("Password"))
		if err != nil {
			returnError(c, err)
			return
		}
		result := loginResult{Account: account}
		if ah.tokens != nil {
			if result.Token, err = ah.tokens.Issue(account); err != nil {
				returnError(c, fmt.Errorf("%w: issuing token: %v", errDefs.ErrInternalServerError, err))
				return
			}
		}
		c.JSON(http.StatusOK, result)
	}
}

func (ah *accountHandler) GetAccountHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := ah.svc.FindAccountByLogin(c.Request.Context(), c.Param("login"))
		if err != nil {
			returnError(c, err)
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

func (ah *accountHandler) prepareAccount(route *gin.RouterGroup, guard func(gin.HandlerFunc) gin.HandlerFunc) {
	route.POST("/register", guard(ah.PostAccountHandler()))
	route.POST("/login", guard(ah.LoginHandler()))
	route.GET("/login/:login", guard(ah.GetAccountHandler()))
}
