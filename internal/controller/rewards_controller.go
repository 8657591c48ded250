package controller

import (
	"errors"

	"levelup_backend/internal/service"
	"levelup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RewardsController struct {
	Rewards *service.RewardsService
}

func NewRewardsController(rewards *service.RewardsService) *RewardsController {
	return &RewardsController{Rewards: rewards}
}

// ListClaims godoc
// @Summary 代币领取记录
// @Tags 奖励
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.TokenClaim}
// @Router /api/rewards/claims [get]
func (c *RewardsController) ListClaims(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	records, err := c.Rewards.ListClaims(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// ClaimTokens godoc
// @Summary 领取等级代币
// @Description 每个等级只能领取一次，重复领取返回 409 和已有记录
// @Tags 奖励
// @Produce  json
// @Security BearerAuth
// @Param   level path int true "等级"
// @Success 201 {object} util.Response{data=model.TokenClaim}
// @Failure 403 {object} util.Response "等级未达到"
// @Failure 409 {object} util.Response "该等级代币已领取"
// @Router /api/rewards/claims/{level} [post]
func (c *RewardsController) ClaimTokens(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	level := int(util.MustParseUint(ctx.Param("level")))
	if level < 1 {
		util.BadRequest(ctx, "无效的等级")
		return
	}

	claim, err := c.Rewards.ClaimTokens(claims.UserID, level)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLevelNotReached):
			util.Forbidden(ctx, "等级未达到，暂不能领取")
		case errors.Is(err, util.ErrAlreadyClaimed):
			ctx.JSON(409, util.Response{Code: 409, Message: "该等级代币已领取", Data: claim})
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, claim)
}

// CanClaim godoc
// @Summary 查询某等级代币是否可领取
// @Tags 奖励
// @Produce  json
// @Security BearerAuth
// @Param   level path int true "等级"
// @Success 200 {object} util.Response{data=object}
// @Router /api/rewards/claims/{level}/can-claim [get]
func (c *RewardsController) CanClaim(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	level := int(util.MustParseUint(ctx.Param("level")))
	if level < 1 {
		util.BadRequest(ctx, "无效的等级")
		return
	}

	ok, err := c.Rewards.CanClaim(claims.UserID, level)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"level": level, "canClaim": ok, "tokens": service.TokensForLevel(level)})
}
