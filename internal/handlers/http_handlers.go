package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"raffled/internal/assets"
	"raffled/internal/raffle"
)

// HTTPHandler exposes the ledger operations over HTTP. The caller's account
// identity comes from the X-Account header; the oracle delivery endpoint is
// authenticated inside the service against the configured oracle identity.
type HTTPHandler struct {
	service *raffle.Service
}

func NewHTTPHandler(service *raffle.Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/raffles", h.CreateRaffle)
	r.GET("/raffles/:id", h.GetRaffle)
	r.POST("/raffles/:id/entries", h.Enter)
	r.POST("/raffles/:id/cancel", h.Cancel)
	r.POST("/raffles/:id/resolutions", h.Resolve)
	r.POST("/raffles/:id/refund-claims", h.ClaimRefund)
	r.POST("/sweep", h.Sweep)
	r.POST("/oracle/deliveries", h.DeliverRandomness)
}

type createRaffleRequest struct {
	PrizeAsset      string `json:"prizeAsset" binding:"required"`
	PrizeQty        uint64 `json:"prizeQty" binding:"required"`
	PaymentAsset    string `json:"paymentAsset" binding:"required"`
	PricePerEntry   uint64 `json:"pricePerEntry" binding:"required"`
	MaxEntries      uint64 `json:"maxEntries" binding:"required"`
	DurationSeconds int64  `json:"durationSeconds" binding:"required"`
}

func (h *HTTPHandler) CreateRaffle(c *gin.Context) {
	caller := c.GetHeader("X-Account")

	var req createRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.service.Create(
		caller,
		assets.Asset(req.PrizeAsset),
		req.PrizeQty,
		assets.Asset(req.PaymentAsset),
		req.PricePerEntry,
		req.MaxEntries,
		time.Duration(req.DurationSeconds)*time.Second,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"raffleId": id})
}

func (h *HTTPHandler) GetRaffle(c *gin.Context) {
	id, ok := raffleID(c)
	if !ok {
		return
	}

	r, err := h.service.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"raffleId":      r.ID,
		"host":          r.Host,
		"prizeAsset":    r.PrizeAsset,
		"prizeQty":      r.PrizeQty,
		"paymentAsset":  r.PaymentAsset,
		"pricePerEntry": r.PricePerEntry,
		"maxEntries":    r.MaxEntries,
		"entriesSold":   r.EntriesSold,
		"expiry":        r.Expiry,
		"status":        r.Status.String(),
	})
}

type enterRequest struct {
	Count          uint64 `json:"count" binding:"required"`
	AttachedNative uint64 `json:"attachedNative"`
}

func (h *HTTPHandler) Enter(c *gin.Context) {
	id, ok := raffleID(c)
	if !ok {
		return
	}

	var req enterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Enter(c.GetHeader("X-Account"), id, req.Count, req.AttachedNative); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"raffleId": id, "count": req.Count})
}

func (h *HTTPHandler) Cancel(c *gin.Context) {
	id, ok := raffleID(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"raffleId": id, "status": raffle.StatusCancelled.String()})
}

type resolveRequest struct {
	Index *uint64 `json:"index"`
	Value *uint64 `json:"value"`
}

// Resolve is the permissionless manual path: either an explicit winner index
// or a substitute random value, exactly one of the two.
func (h *HTTPHandler) Resolve(c *gin.Context) {
	id, ok := raffleID(c)
	if !ok {
		return
	}

	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	switch {
	case req.Index != nil && req.Value == nil:
		err = h.service.ResolveByIndex(id, *req.Index)
	case req.Value != nil && req.Index == nil:
		err = h.service.ResolveByRandomValue(id, *req.Value)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of index or value is required"})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"raffleId": id, "status": raffle.StatusCompleted.String()})
}

func (h *HTTPHandler) ClaimRefund(c *gin.Context) {
	id, ok := raffleID(c)
	if !ok {
		return
	}

	if err := h.service.ClaimRefund(c.GetHeader("X-Account"), id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"raffleId": id})
}

// Sweep runs scan/process rounds until the scan reports nothing eligible,
// returning the ids it advanced. Anyone may trigger it.
func (h *HTTPHandler) Sweep(c *gin.Context) {
	processed := make([]uint64, 0)

	for {
		id, ok, err := h.service.Scan()
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !ok {
			break
		}
		if _, err := h.service.Process(id); err != nil {
			abortWithError(c, err)
			return
		}
		processed = append(processed, id)
	}

	c.JSON(http.StatusOK, gin.H{"processed": processed})
}

type deliveryRequest struct {
	RequestID string   `json:"requestId" binding:"required"`
	Values    []uint64 `json:"values" binding:"required"`
}

func (h *HTTPHandler) DeliverRandomness(c *gin.Context) {
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.DeliverRandomness(c.GetHeader("X-Account"), req.RequestID, req.Values); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requestId": req.RequestID})
}

func raffleID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid raffle id"})
		return 0, false
	}
	return id, true
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, raffle.ErrInvalidParameters),
		errors.Is(err, raffle.ErrInsufficientPayment),
		errors.Is(err, raffle.ErrUnexpectedNativePayment):
		status = http.StatusBadRequest
	case errors.Is(err, raffle.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, raffle.ErrUnknownRaffle):
		status = http.StatusNotFound
	case errors.Is(err, raffle.ErrRaffleNotOpen),
		errors.Is(err, raffle.ErrRaffleNotExpired),
		errors.Is(err, raffle.ErrCapacityExceeded),
		errors.Is(err, raffle.ErrCapacityFilled),
		errors.Is(err, raffle.ErrNoRefundAvailable),
		errors.Is(err, raffle.ErrAssetTransferFailed),
		errors.Is(err, raffle.ErrReentrant):
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
