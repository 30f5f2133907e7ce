package service

import (
	"context"
	"fmt"

	"eventhub/config"
	"eventhub/infras/kafka"
	"eventhub/infras/mailer"
	"eventhub/infras/otel"
	"eventhub/internal/domains/booking/model"
	"eventhub/internal/domains/booking/model/dto"
	"eventhub/internal/domains/booking/repository"
	catalogModel "eventhub/internal/domains/catalog/model"
	catalogRepo "eventhub/internal/domains/catalog/repository"
	"eventhub/shared"
	"eventhub/shared/cache"
	"eventhub/shared/constant"
	gDto "eventhub/shared/dto"
	"eventhub/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheStatsBooking  = "booking:stats"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetStats(ctx context.Context) (dto.BookingStatsResponse, error)
}

type serviceImpl struct {
	repo        repository.Booking
	catalogRepo catalogRepo.Catalog
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	kafka       kafka.Client
	mailer      mailer.Mailer
}

func New(
	repo repository.Booking,
	catalogRepo catalogRepo.Catalog,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafkaClient kafka.Client,
	mailerClient mailer.Mailer,
) Booking {
	return &serviceImpl{
		repo:        repo,
		catalogRepo: catalogRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		kafka:       kafkaClient,
		mailer:      mailerClient,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	userName, _ := ctx.Value(constant.ContextKeyUserName).(string)
	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	// Payment simulation gate. No booking row exists until the card details
	// pass the checkout rules.
	if err = req.PaymentCard.Validate(); err != nil {
		return res, err
	}

	pkg, err := s.catalogRepo.Get(ctx, shared.FilterByID(req.ServiceID, catalogModel.FieldID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service package")

		return res, fmt.Errorf("failed to get service package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return res, failure.BadRequestFromString("service package does not exist") //nolint:wrapcheck
	}

	// The amount is always recomputed from the stored package price. A
	// client-sent total that disagrees is rejected, not trusted.
	totalAmount := pkg.Quote(req.GuestCount)
	if req.TotalAmount != totalAmount {
		return res, failure.BadRequestFromString("total amount does not match the package price") //nolint:wrapcheck
	}

	booking, err := req.ToModel(userID, userName, userEmail, pkg.Title, totalAmount)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifyCreated(c, booking)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheStatsBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

// notifyCreated hands the booking to the notification pipeline. When Kafka is
// enabled the event goes to the broker and the notifier worker mails the
// confirmation; otherwise the mail is sent inline. Failures are logged and
// never surface to the caller: the booking is already persisted.
func (s *serviceImpl) notifyCreated(ctx context.Context, booking model.Booking) {
	var event dto.BookingCreatedEvent
	event.FromModel(booking)

	if s.cfg.Kafka.Enable {
		msg := kafka.Message{Key: booking.ID, Value: event}

		if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingCreated, msg); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking created event")
		}

		return
	}

	email := mailer.ConfirmationEmail{
		ToName:    booking.UserName,
		ToEmail:   booking.UserEmail,
		EventName: booking.ServiceTitle,
		EventDate: event.Date,
		Amount:    booking.TotalAmount,
	}

	if err := s.mailer.SendBookingConfirmation(ctx, email); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to send booking confirmation email")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Newest bookings first unless the caller asked for another order.
	if req.SortBy == constant.Empty {
		req.SortBy = constant.DefaultValueSortBy
		req.SortDir = constant.DefaultValueSortDir
	}

	filter := s.scopeFilter(ctx)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetStats(ctx context.Context) (res dto.BookingStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := s.scopeFilter(ctx)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheStatsBooking, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	stats, err := s.repo.GetStats(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking stats")

		return res, fmt.Errorf("failed to get booking stats: %w", err)
	}

	res.TotalBookings = stats.TotalBookings
	res.TotalRevenue = stats.TotalRevenue
	res.TotalGuests = stats.TotalGuests

	revenues, err := s.repo.GetServiceRevenue(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service revenue")

		return res, fmt.Errorf("failed to get service revenue: %w", err)
	}

	res.Services = make([]dto.ServiceRevenueResponse, 0, len(revenues))
	for _, revenue := range revenues {
		res.Services = append(res.Services, dto.ServiceRevenueResponse{
			ServiceID:    revenue.ServiceID,
			ServiceTitle: revenue.ServiceTitle,
			Bookings:     revenue.Bookings,
			Revenue:      revenue.Revenue,
		})
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking stats to cache")
		}
	}()

	return res, nil
}

// scopeFilter limits queries to the caller's own rows. Admins see everything.
func (s *serviceImpl) scopeFilter(ctx context.Context) gDto.FilterGroup {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAdmin {
		return gDto.FilterGroup{}
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return shared.FilterByID(userID, model.FieldUserID, model.TableName)
}
