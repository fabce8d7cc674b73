package api

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stakeworks/poolledger/internal/notify"
	"github.com/stakeworks/poolledger/internal/pool"
)

// NewRouter wires the public operation surface. The controller is injected
// through middleware the same way a database handle would be, so handlers
// stay plain functions. The hub is optional; passing nil disables /ws.
func NewRouter(ctrl *pool.Controller, hub *notify.Hub) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.Use(func(c *gin.Context) {
		c.Set("pool", ctrl)
		c.Next()
	})

	router.POST("/stake/deposit", depositStake)
	router.POST("/stake/withdraw", withdrawStake)
	router.POST("/stake/redeem", redeem)
	router.POST("/reward", depositReward)
	router.GET("/account/:address", getAccount)
	router.GET("/pool", getPool)
	router.GET("/epochs/:number", getEpoch)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			hub.Serve(c.Writer, c.Request)
		})
	}

	return router
}

func controller(c *gin.Context) *pool.Controller {
	return c.MustGet("pool").(*pool.Controller)
}

type stakeRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  uint64 `json:"amount"`
}

type accountRequest struct {
	Address string `json:"address" binding:"required"`
}

func depositStake(c *gin.Context) {
	var req stakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := controller(c).DepositStake(req.Address, req.Amount); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": req.Address, "amount": req.Amount})
}

func withdrawStake(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := controller(c).WithdrawStake(req.Address); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": req.Address})
}

func redeem(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	redeemed, err := controller(c).Redeem(req.Address)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": req.Address, "redeemed": redeemed})
}

func depositReward(c *gin.Context) {
	var req struct {
		Amount uint64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	caller := c.GetHeader("X-Caller-Address")
	epoch, err := controller(c).DepositReward(caller, req.Amount)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"epoch": epoch, "amount": req.Amount})
}

func getAccount(c *gin.Context) {
	ctrl := controller(c)
	address := c.Param("address")

	stake, err := ctrl.Balance(address)
	if err != nil {
		abortWithError(c, err)
		return
	}
	lastSettled, err := ctrl.LastSettledEpoch(address)
	if err != nil {
		abortWithError(c, err)
		return
	}
	pending, err := ctrl.PendingReward(address)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"address":            address,
		"stake":              stake,
		"last_settled_epoch": lastSettled,
		"pending_reward":     pending,
	})
}

func getPool(c *gin.Context) {
	p, err := controller(c).PoolInfo()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_stake": p.TotalStake,
		"epoch_count": p.EpochCount,
	})
}

func getEpoch(c *gin.Context) {
	number, err := strconv.ParseUint(c.Param("number"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid epoch number"})
		return
	}
	epoch, err := controller(c).Epoch(number)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"number":        epoch.Number,
		"reward_amount": epoch.RewardAmount,
		"pool_balance":  epoch.PoolBalance,
	})
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pool.ErrZeroValue), errors.Is(err, pool.ErrNothingToRedeem):
		status = http.StatusBadRequest
	case errors.Is(err, pool.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, pool.ErrNoStake), errors.Is(err, pool.ErrEpochOutOfRange):
		status = http.StatusNotFound
	case errors.Is(err, pool.ErrEmptyPool):
		status = http.StatusConflict
	case errors.Is(err, pool.ErrValueTransfer):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
