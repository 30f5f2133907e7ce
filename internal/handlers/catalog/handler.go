package catalog

import (
	"net/http"

	"eventhub/infras/otel"
	"eventhub/internal/domains/catalog/model/dto"
	"eventhub/internal/domains/catalog/service"
	"eventhub/shared/constant"
	gDto "eventhub/shared/dto"
	"eventhub/shared/validator"
	"eventhub/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Catalog
	otel    otel.Otel
}

func New(service service.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/services", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetServices)
		routerGroup.Post("/custom", handler.CreateCustomPackage)
		routerGroup.Get("/{id}", handler.GetServiceByID)
		routerGroup.Post("/{id}/image", handler.UploadServiceImage)
	})
}

// GetServices lists the service catalog
// @Summary Get service packages
// @Description Return the decoration and catering packages on offer.
// @Tags Catalog
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param type query string false "Filter by service type"
// @Success 200 {object} dto.GetServicePackagesResponse "Services retrieved successfully"
// @Failure 500 {object} response.Error
// @Router /v1/services [get]
func (handler *Handler) GetServices(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filter := gDto.FilterGroup{}
	if serviceType := request.URL.Query().Get("type"); serviceType != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    "type",
			Operator: gDto.FilterOperatorEq,
			Value:    serviceType,
			Table:    "service_packages",
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service packages")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetServiceByID returns a single package
// @Summary Get a service package
// @Description Return one service package by its ID.
// @Tags Catalog
// @Produce json
// @Param id path string true "Service Package ID"
// @Success 200 {object} dto.ServicePackageResponse "Service retrieved successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [get]
func (handler *Handler) GetServiceByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service package")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateCustomPackage books in an AI-suggested plan
// @Summary Create a custom service package
// @Description Materialize a planner suggestion as a bookable package priced by budget tier.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomPackageRequest true "Custom package request"
// @Success 201 {object} dto.ServicePackageResponse "Custom package created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/services/custom [post]
func (handler *Handler) CreateCustomPackage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCustomPackage")
	defer scope.End()

	req := dto.CreateCustomPackageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateCustom(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create custom service package")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// UploadServiceImage replaces a package image
// @Summary Upload a service package image
// @Description Upload a new image for the package and return the updated package.
// @Tags Catalog
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Service Package ID"
// @Param image formData file true "Package image"
// @Success 200 {object} dto.ServicePackageResponse "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/services/{id}/image [post]
func (handler *Handler) UploadServiceImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadServiceImage")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, err)

		return
	}

	req := dto.UploadImageRequest{}

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UploadImage(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload service package image")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Service package image uploaded by user " + user)

	response.WithJSON(writer, http.StatusOK, res)
}
