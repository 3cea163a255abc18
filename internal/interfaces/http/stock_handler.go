package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/invorya/stock-api/internal/application/dto"
	"github.com/invorya/stock-api/internal/application/ledger"
	"github.com/invorya/stock-api/internal/domain"
	"github.com/invorya/stock-api/internal/domain/entity"
	"github.com/invorya/stock-api/pkg/validator"
)

// Límites de página del histórico (acotados aquí, no en el ledger).
const (
	historyDefaultPageSize = 10
	historyMaxPageSize     = 50
	globalDefaultPageSize  = 20
	globalMaxPageSize      = 100
)

// StockHandler maneja los movimientos de stock y el histórico.
type StockHandler struct {
	uc *ledger.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Entry godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "barcode, quantity, notes"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/entry [post]
func (h *StockHandler) Entry(c *fiber.Ctx) error {
	return h.applyMovement(c, entity.MovementTypeEntry)
}

// Exit godoc
// @Summary      Registrar salida de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "barcode, quantity, notes"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/exit [post]
func (h *StockHandler) Exit(c *fiber.Ctx) error {
	return h.applyMovement(c, entity.MovementTypeExit)
}

func (h *StockHandler) applyMovement(c *fiber.Ctx, movType string) error {
	userID := GetUserID(c)
	if userID <= 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Errors:  validator.Messages(errs),
		})
	}

	product, err := h.uc.ApplyMovement(c.Context(), ledger.MovementInput{
		Barcode:  in.Barcode,
		Quantity: in.Quantity,
		Type:     movType,
		Notes:    in.Notes,
		UserID:   userID,
	})
	if err != nil {
		return h.movementError(c, err)
	}
	return c.JSON(dto.ToProductResponse(product))
}

func (h *StockHandler) movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrProductInactive):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRODUCT_INACTIVE", Message: "producto desactivado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		// El error tipado lleva stock disponible y cantidad pedida.
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	default:
		// Fallo de persistencia: rollback ya hecho; no filtrar detalle al caller.
		log.Error().Err(err).Msg("aplicar movimiento de stock")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// History godoc
// @Summary      Histórico global de movimientos
// @Tags         stock
// @Produce      json
// @Param        page      query  int  false  "Página (1-indexada)"  default(1)
// @Param        pageSize  query  int  false  "Items por página"     default(20)
// @Success      200  {object}  dto.HistoryResponse
// @Router       /api/stock/history [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	page, pageSize := pageParams(c, globalDefaultPageSize, globalMaxPageSize)
	out, err := h.uc.GetHistory(c.Context(), nil, page, pageSize)
	if err != nil {
		log.Error().Err(err).Msg("histórico global")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(toHistoryResponse(out))
}

// HistoryByProduct godoc
// @Summary      Histórico de movimientos de un producto
// @Tags         stock
// @Produce      json
// @Param        productId  path   int  true   "ID del producto"
// @Param        page       query  int  false  "Página (1-indexada)"  default(1)
// @Param        pageSize   query  int  false  "Items por página"     default(10)
// @Success      200  {object}  dto.HistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/history/{productId} [get]
func (h *StockHandler) HistoryByProduct(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "productId inválido"})
	}
	page, pageSize := pageParams(c, historyDefaultPageSize, historyMaxPageSize)
	pid := int64(productID)
	out, err := h.uc.GetHistory(c.Context(), &pid, page, pageSize)
	if err != nil {
		log.Error().Err(err).Msg("histórico de producto")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(toHistoryResponse(out))
}

// pageParams lee page/pageSize del query string y acota pageSize al máximo.
func pageParams(c *fiber.Ctx, defSize, maxSize int) (int, int) {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", defSize)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}

func toHistoryResponse(p *ledger.HistoryPage) dto.HistoryResponse {
	out := dto.HistoryResponse{
		Items: make([]dto.MovementResponse, 0, len(p.Items)),
		Page:  dto.NewPageMeta(p.Page, p.PageSize, p.TotalItems),
	}
	for _, m := range p.Items {
		out.Items = append(out.Items, dto.ToMovementResponse(m))
	}
	return out
}
