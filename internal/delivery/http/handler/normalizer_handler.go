package handler

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/pkg/errors"
	"github.com/georef-api/internal/pkg/logger"
	"github.com/georef-api/internal/pkg/params"
	"github.com/georef-api/internal/pkg/utils"
	"github.com/georef-api/internal/usecase"
)

// NormalizerHandler - обработчик эндпоинтов нормализации сущностей и обратного геокодирования
type NormalizerHandler struct {
	normalizerUC *usecase.NormalizerUseCase
	logger       *zap.Logger
}

// NewNormalizerHandler - создание нового NormalizerHandler
func NewNormalizerHandler(normalizerUC *usecase.NormalizerUseCase, logger *zap.Logger) *NormalizerHandler {
	return &NormalizerHandler{
		normalizerUC: normalizerUC,
		logger:       logger,
	}
}

// GetStates godoc
// @Summary Normalize a state
// @Tags Entities
// @Produce json
// @Param id query string false "State id"
// @Param name query string false "State name"
// @Param exact query bool false "Match the name exactly"
// @Param order query string false "Sort by id or name"
// @Param fields query string false "Comma-separated fields to keep"
// @Param flatten query bool false "Flatten nested entities"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/states [get]
func (h *NormalizerHandler) GetStates(c *fiber.Ctx) error {
	return h.single(c, params.States)
}

// PostStates godoc
// @Summary Normalize states in batch
// @Tags Entities
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "{\"states\": [ {...}, ... ]}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/states [post]
func (h *NormalizerHandler) PostStates(c *fiber.Ctx) error {
	return h.batch(c, params.States)
}

// GetDepartments godoc
// @Summary Normalize a department
// @Tags Entities
// @Produce json
// @Param id query string false "Department id"
// @Param name query string false "Department name"
// @Param state query string false "State id or name"
// @Param exact query bool false "Match the name exactly"
// @Param order query string false "Sort by id or name"
// @Param fields query string false "Comma-separated fields to keep"
// @Param flatten query bool false "Flatten nested entities"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/departments [get]
func (h *NormalizerHandler) GetDepartments(c *fiber.Ctx) error {
	return h.single(c, params.Departments)
}

// PostDepartments godoc
// @Summary Normalize departments in batch
// @Tags Entities
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "{\"departments\": [ {...}, ... ]}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/departments [post]
func (h *NormalizerHandler) PostDepartments(c *fiber.Ctx) error {
	return h.batch(c, params.Departments)
}

// GetMunicipalities godoc
// @Summary Normalize a municipality
// @Tags Entities
// @Produce json
// @Param id query string false "Municipality id"
// @Param name query string false "Municipality name"
// @Param state query string false "State id or name"
// @Param department query string false "Department id or name"
// @Param exact query bool false "Match the name exactly"
// @Param order query string false "Sort by id or name"
// @Param fields query string false "Comma-separated fields to keep"
// @Param flatten query bool false "Flatten nested entities"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/municipalities [get]
func (h *NormalizerHandler) GetMunicipalities(c *fiber.Ctx) error {
	return h.single(c, params.Municipalities)
}

// PostMunicipalities godoc
// @Summary Normalize municipalities in batch
// @Tags Entities
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "{\"municipalities\": [ {...}, ... ]}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/municipalities [post]
func (h *NormalizerHandler) PostMunicipalities(c *fiber.Ctx) error {
	return h.batch(c, params.Municipalities)
}

// GetLocalities godoc
// @Summary Normalize a locality
// @Tags Entities
// @Produce json
// @Param id query string false "Locality id"
// @Param name query string false "Locality name"
// @Param state query string false "State id or name"
// @Param department query string false "Department id or name"
// @Param municipality query string false "Municipality id or name"
// @Param exact query bool false "Match the name exactly"
// @Param order query string false "Sort by id or name"
// @Param fields query string false "Comma-separated fields to keep"
// @Param flatten query bool false "Flatten nested entities"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/localities [get]
func (h *NormalizerHandler) GetLocalities(c *fiber.Ctx) error {
	return h.single(c, params.Localities)
}

// PostLocalities godoc
// @Summary Normalize localities in batch
// @Tags Entities
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "{\"localities\": [ {...}, ... ]}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/localities [post]
func (h *NormalizerHandler) PostLocalities(c *fiber.Ctx) error {
	return h.batch(c, params.Localities)
}

// GetStreets godoc
// @Summary Normalize a street
// @Tags Streets
// @Produce json
// @Param name query string false "Street name"
// @Param state query string false "State id or name"
// @Param department query string false "Department id or name"
// @Param road_type query string false "Road type"
// @Param exact query bool false "Match the name exactly"
// @Param fields query string false "Comma-separated fields to keep"
// @Param flatten query bool false "Flatten nested entities"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/streets [get]
func (h *NormalizerHandler) GetStreets(c *fiber.Ctx) error {
	return h.single(c, params.Streets)
}

// PostStreets godoc
// @Summary Normalize streets in batch
// @Tags Streets
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "{\"streets\": [ {...}, ... ]}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/streets [post]
func (h *NormalizerHandler) PostStreets(c *fiber.Ctx) error {
	return h.batch(c, params.Streets)
}

// GetAddresses godoc
// @Summary Normalize an address
// @Tags Streets
// @Produce json
// @Param address query string true "Street name followed by a door number"
// @Param state query string false "State id or name"
// @Param department query string false "Department id or name"
// @Param road_type query string false "Road type"
// @Param exact query bool false "Match the street name exactly"
// @Param fields query string false "Comma-separated fields to keep"
// @Param flatten query bool false "Flatten nested entities"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/addresses [get]
func (h *NormalizerHandler) GetAddresses(c *fiber.Ctx) error {
	return h.single(c, params.Addresses)
}

// PostAddresses godoc
// @Summary Normalize addresses in batch
// @Tags Streets
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "{\"addresses\": [ {...}, ... ]}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/addresses [post]
func (h *NormalizerHandler) PostAddresses(c *fiber.Ctx) error {
	return h.batch(c, params.Addresses)
}

// GetPlace godoc
// @Summary Reverse-geocode a point
// @Description Returns the state, department and municipality containing the point.
// @Tags Places
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param fields query string false "Comma-separated fields to keep"
// @Param flatten query bool false "Flatten nested entities"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/place [get]
func (h *NormalizerHandler) GetPlace(c *fiber.Ctx) error {
	return h.single(c, params.Places)
}

// PostPlaces godoc
// @Summary Reverse-geocode points in batch
// @Tags Places
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "{\"places\": [ {\"lat\": ..., \"lon\": ...}, ... ]}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/place [post]
func (h *NormalizerHandler) PostPlaces(c *fiber.Ctx) error {
	return h.batch(c, params.Places)
}

// single обрабатывает запрос с одной записью параметров из query string
func (h *NormalizerHandler) single(c *fiber.Ctx, schema params.Schema) error {
	queries := params.Parse([]map[string]interface{}{params.FromQueryString(c.Queries())}, schema)

	if !queries[0].Valid() {
		return utils.SendError(c, errors.ErrInvalidParameters.WithDetails(map[string]interface{}{
			domain.ErrorsKey: queries[0].Errors,
		}))
	}

	results, err := h.resolve(c, schema.Entity, queries)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, utils.SingleEnvelope(schema.Entity.ResponseKey(), results[0].Value))
}

// batch обрабатывает запрос со списком записей параметров в теле
func (h *NormalizerHandler) batch(c *fiber.Ctx, schema params.Schema) error {
	records, err := batchRecords(c.Body(), schema.Entity.String())
	if err != nil {
		return utils.SendError(c, err)
	}

	results, err := h.resolve(c, schema.Entity, params.Parse(records, schema))
	if err != nil {
		return utils.SendError(c, err)
	}

	key := schema.Entity.ResponseKey()
	entries := make([]fiber.Map, len(results))
	for i, r := range results {
		entries[i] = utils.BatchEntry(key, r.Value, r.Errors)
	}

	return utils.SendSuccess(c, utils.BatchEnvelope(entries))
}

func (h *NormalizerHandler) resolve(c *fiber.Ctx, entity domain.Entity, queries []domain.ParsedQuery) ([]usecase.Result, error) {
	ctx := c.UserContext()

	var results []usecase.Result
	var err error
	if entity == domain.EntityPlaces {
		results, err = h.normalizerUC.Places(ctx, queries)
	} else {
		results, err = h.normalizerUC.Entities(ctx, entity, queries)
	}
	if err != nil {
		logger.FromContext(ctx, h.logger).Warn("Failed to resolve queries",
			zap.String("entity", entity.String()),
			zap.Int("queries", len(queries)),
			zap.Error(err))
		return nil, err
	}
	return results, nil
}

// batchRecords извлекает список записей из тела {<key>: [ {...}, ... ]}
func batchRecords(body []byte, key string) ([]map[string]interface{}, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.ErrInvalidRequest.WithMessage("Request body must be a JSON object")
	}

	raw, ok := payload[key]
	if !ok {
		return nil, errors.ErrEmptyBatch.WithMessage(fmt.Sprintf("Request body must contain a non-empty '%s' list", key))
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.ErrInvalidRequest.WithMessage(fmt.Sprintf("'%s' must be a list of objects", key))
	}
	if len(records) == 0 {
		return nil, errors.ErrEmptyBatch.WithMessage(fmt.Sprintf("Request body must contain a non-empty '%s' list", key))
	}

	return records, nil
}
