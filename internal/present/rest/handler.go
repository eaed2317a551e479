package rest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/folionet/folionet"
	"github.com/folionet/folionet/internal/domain"
	"github.com/folionet/folionet/internal/present/rest/presenter"
	"github.com/folionet/folionet/internal/service"
	"github.com/folionet/folionet/internal/usecase"
)

type Handler struct {
	auth        *usecase.AuthUsecase
	investment  *usecase.InvestmentUsecase
	purchase    *usecase.PurchaseUsecase
	transaction *usecase.TransactionUsecase
	authService *service.AuthService
	signal      *service.SignalService
}

func NewHandler(
	auth *usecase.AuthUsecase,
	investment *usecase.InvestmentUsecase,
	purchase *usecase.PurchaseUsecase,
	transaction *usecase.TransactionUsecase,
	authService *service.AuthService,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		auth:        auth,
		investment:  investment,
		purchase:    purchase,
		transaction: transaction,
		authService: authService,
		signal:      signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/auth", h.handleAuthCheck)
	e.GET("/api/auth/challenge", h.handleChallenge)
	e.POST("/api/auth/verify", h.handleVerify)
	e.POST("/api/auth/register", h.handleRegister)
	e.GET("/api/investments", h.handleListInvestments)
	e.POST("/api/investments", h.handleCreateInvestment)
	e.GET("/api/investments/:protectedDataAddress", h.handleGetInvestment)
	e.POST("/api/investments/purchase", h.handlePurchase)
	e.GET("/api/purchases", h.handleListPurchases)
	e.POST("/api/transactions", h.handleCreateTransaction)
	e.PUT("/api/transactions/:txHash", h.handleUpdateTransaction)
	e.GET("/api/tokens", h.handleTokens)
	e.GET("/realtime", h.handleRealtime)
}

// requester resolves the caller placed in the request context by the auth
// middleware to a user row.
func (h *Handler) requester(c echo.Context) (domain.User, error) {
	ctx := c.Request().Context()
	address, _ := ctx.Value(domain.RequesterAddressCtxKey).(string)
	return h.auth.Resolve(ctx, address)
}

type authCheckRequest struct {
	Address string `json:"address"`
}

func (h *Handler) handleAuthCheck(c echo.Context) error {
	ctx := c.Request().Context()

	var req authCheckRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.Address == "" {
		return presenter.BadRequestMessage(c, "missing address")
	}

	result, err := h.auth.Check(ctx, req.Address)
	if err != nil {
		return presenter.Error(c, err)
	}

	if result.Status == usecase.CheckStatusRegistrationRequired {
		return presenter.OK(c, echo.Map{
			"status":  result.Status,
			"address": result.Address,
		})
	}

	return presenter.OK(c, echo.Map{
		"status": result.Status,
		"user":   result.User,
	})
}

func (h *Handler) handleChallenge(c echo.Context) error {
	ctx := c.Request().Context()

	address := c.QueryParam("address")
	if address == "" {
		return presenter.BadRequestMessage(c, "address parameter is required")
	}

	message, err := h.authService.IssueChallenge(ctx, address)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"status":  "SUCCESS",
		"address": folionet.NormalizeAddress(address),
		"message": message,
	})
}

type verifyRequest struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

func (h *Handler) handleVerify(c echo.Context) error {
	ctx := c.Request().Context()

	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.Address == "" || req.Signature == "" {
		return presenter.BadRequestMessage(c, "address and signature are required")
	}

	token, err := h.authService.VerifySignature(ctx, req.Address, req.Signature)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"status": "SUCCESS",
		"token":  token,
	})
}

type registerRequest struct {
	Address string  `json:"address"`
	Role    string  `json:"role"`
	Name    string  `json:"name"`
	Email   *string `json:"email"`
}

func (h *Handler) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	user, err := h.auth.Register(ctx, usecase.RegisterInput{
		Address: req.Address,
		Role:    req.Role,
		Name:    req.Name,
		Email:   req.Email,
	})
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"status": "SUCCESS",
		"user":   user,
	})
}

func (h *Handler) handleListInvestments(c echo.Context) error {
	ctx := c.Request().Context()

	investments, err := h.investment.List(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"status":      "SUCCESS",
		"investments": investments,
	})
}

type tokenAllocationRequest struct {
	Symbol     string          `json:"symbol"`
	Percentage decimal.Decimal `json:"percentage"`
}

type createInvestmentRequest struct {
	ProtectedDataAddress string                   `json:"protectedDataAddress"`
	CollectionID         string                   `json:"collectionId"`
	Name                 string                   `json:"name"`
	Description          *string                  `json:"description"`
	Price                decimal.Decimal          `json:"price"`
	TokenAllocations     []tokenAllocationRequest `json:"tokenAllocations"`
}

func (h *Handler) handleCreateInvestment(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := h.requester(c)
	if err != nil {
		return presenter.Error(c, err)
	}

	var req createInvestmentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	allocations := make([]domain.TokenAllocation, 0, len(req.TokenAllocations))
	for _, allocation := range req.TokenAllocations {
		allocations = append(allocations, domain.TokenAllocation{
			Symbol:     allocation.Symbol,
			Percentage: allocation.Percentage,
		})
	}

	investment, err := h.investment.Create(ctx, caller, usecase.CreateInvestmentInput{
		ProtectedDataAddress: req.ProtectedDataAddress,
		CollectionID:         req.CollectionID,
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		Allocations:          allocations,
	})
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"status":     "SUCCESS",
		"investment": investment,
	})
}

func (h *Handler) handleGetInvestment(c echo.Context) error {
	ctx := c.Request().Context()

	investment, err := h.investment.GetByProtectedDataAddress(ctx, c.Param("protectedDataAddress"))
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"status":     "SUCCESS",
		"investment": investment,
	})
}

type purchaseRequest struct {
	InvestmentID string `json:"investmentId"`
	// Price is accepted for backwards compatibility and ignored; the
	// recorded price is always the investment's listed price.
	Price *decimal.Decimal `json:"price"`
}

func (h *Handler) handlePurchase(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := h.requester(c)
	if err != nil {
		return presenter.Error(c, err)
	}

	var req purchaseRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	purchase, err := h.purchase.Purchase(ctx, caller, req.InvestmentID)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"status":   "SUCCESS",
		"purchase": purchase,
	})
}

func (h *Handler) handleListPurchases(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := h.requester(c)
	if err != nil {
		return presenter.Error(c, err)
	}

	purchases, err := h.purchase.ListByUser(ctx, caller)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"status":    "SUCCESS",
		"purchases": purchases,
	})
}

type createTransactionRequest struct {
	TxHash string `json:"txHash"`
	Type   string `json:"type"`
}

func (h *Handler) handleCreateTransaction(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.requester(c); err != nil {
		return presenter.Error(c, err)
	}

	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	transaction, err := h.transaction.Track(ctx, req.TxHash, req.Type)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"status":      "SUCCESS",
		"transaction": transaction,
	})
}

type updateTransactionRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateTransaction(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.requester(c); err != nil {
		return presenter.Error(c, err)
	}

	var req updateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	transaction, err := h.transaction.UpdateStatus(ctx, c.Param("txHash"), req.Status)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"status":      "SUCCESS",
		"transaction": transaction,
	})
}

func (h *Handler) handleTokens(c echo.Context) error {
	return presenter.OK(c, echo.Map{
		"status": "SUCCESS",
		"tokens": folionet.Tokens,
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type     string   `json:"type"`
	Channels []string `json:"channels"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx := c.Request().Context()

	// Realtime and the reader goroutine may still hold these after we
	// return; they shut down via ctx, so neither channel is ever closed.
	input := make(chan []string)
	output := make(chan folionet.Event)

	go h.signal.Realtime(ctx, input, output)

	input <- []string{folionet.ChannelInvestments, folionet.ChannelPurchases}

	quit := make(chan struct{}, 1)

	go func() {
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {

				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				break
			}

			switch req.Type {
			case "listen":
				select {
				case input <- req.Channels:
				case <-ctx.Done():
					return
				}
				slog.DebugContext(
					ctx, fmt.Sprintf("Socket subscribe: %s", req.Channels),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
