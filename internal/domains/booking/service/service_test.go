package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"eventhub/config"
	"eventhub/infras/kafka"
	kafkaMocks "eventhub/infras/kafka/mocks"
	mailerMocks "eventhub/infras/mailer/mocks"
	"eventhub/infras/otel/mocks"
	bookingMocks "eventhub/internal/domains/booking/mocks"
	"eventhub/internal/domains/booking/model"
	"eventhub/internal/domains/booking/model/dto"
	"eventhub/internal/domains/booking/repository"
	"eventhub/internal/domains/booking/service"
	catalogMocks "eventhub/internal/domains/catalog/mocks"
	catalogModel "eventhub/internal/domains/catalog/model"
	cacheMocks "eventhub/shared/cache/mocks"
	"eventhub/shared/constant"
	gDto "eventhub/shared/dto"
	"eventhub/shared/timezone"
)

func validCard() dto.PaymentCard {
	return dto.PaymentCard{
		CardNumber: "4111 1111 1111 1111",
		CardName:   "Test User",
		CardExpiry: "12/30",
		CardCVV:    "123",
	}
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserName, "Test User")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "test@example.com")

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestBookingService_Create(t *testing.T) {
	cateringPackage := catalogModel.ServicePackage{
		ID:    "s4",
		Type:  catalogModel.TypeCatering,
		Title: "Premium Buffet Catering",
		Price: 500,
	}

	weddingPackage := catalogModel.ServicePackage{
		ID:    "s1",
		Type:  catalogModel.TypeWedding,
		Title: "Royal Wedding Package",
		Price: 150000,
	}

	tests := []struct {
		name       string
		req        dto.CreateBookingRequest
		setupMock  func(repo *bookingMocks.MockBooking, catalog *catalogMocks.MockCatalog)
		wantErr    bool
		wantAmount int64
	}{
		{
			name: "catering priced per guest",
			req: dto.CreateBookingRequest{
				ServiceID:   "s4",
				Date:        "2026-10-20",
				GuestCount:  100,
				TotalAmount: 50000,
				PaymentCard: validCard(),
			},
			setupMock: func(repo *bookingMocks.MockBooking, catalog *catalogMocks.MockCatalog) {
				catalog.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cateringPackage, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, int64(50000), booking.TotalAmount)
						assert.Equal(t, model.StatusConfirmed, booking.Status)

						return nil
					})
			},
			wantErr:    false,
			wantAmount: 50000,
		},
		{
			name: "flat price ignores guest count",
			req: dto.CreateBookingRequest{
				ServiceID:   "s1",
				Date:        "2026-12-01",
				GuestCount:  250,
				TotalAmount: 150000,
				PaymentCard: validCard(),
			},
			setupMock: func(repo *bookingMocks.MockBooking, catalog *catalogMocks.MockCatalog) {
				catalog.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(weddingPackage, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:    false,
			wantAmount: 150000,
		},
		{
			name: "custom plan booked at its flat tier price",
			req: dto.CreateBookingRequest{
				ServiceID:   "c7f3d2a0-5b1e-4c9a-8f6d-2e4b7a9c1d3e",
				Date:        "2026-11-15",
				GuestCount:  80,
				TotalAmount: 25000,
				PaymentCard: validCard(),
			},
			setupMock: func(repo *bookingMocks.MockBooking, catalog *catalogMocks.MockCatalog) {
				catalog.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(catalogModel.ServicePackage{
						ID:    "c7f3d2a0-5b1e-4c9a-8f6d-2e4b7a9c1d3e",
						Type:  catalogModel.TypeCustom,
						Title: "Enchanted Garden",
						Price: catalogModel.CustomPrice(catalogModel.BudgetMedium),
					}, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:    false,
			wantAmount: 25000,
		},
		{
			name: "short card number rejected before any persistence",
			req: dto.CreateBookingRequest{
				ServiceID:   "s1",
				Date:        "2026-12-01",
				GuestCount:  10,
				TotalAmount: 150000,
				PaymentCard: dto.PaymentCard{
					CardNumber: "1234567890",
					CardName:   "Test User",
					CardExpiry: "12/30",
					CardCVV:    "123",
				},
			},
			setupMock: func(repo *bookingMocks.MockBooking, catalog *catalogMocks.MockCatalog) {},
			wantErr:   true,
		},
		{
			name: "missing cvv rejected",
			req: dto.CreateBookingRequest{
				ServiceID:   "s1",
				Date:        "2026-12-01",
				GuestCount:  10,
				TotalAmount: 150000,
				PaymentCard: dto.PaymentCard{
					CardNumber: "4111111111111111",
					CardName:   "Test User",
					CardExpiry: "12/30",
					CardCVV:    "12",
				},
			},
			setupMock: func(repo *bookingMocks.MockBooking, catalog *catalogMocks.MockCatalog) {},
			wantErr:   true,
		},
		{
			name: "unknown service package",
			req: dto.CreateBookingRequest{
				ServiceID:   "missing",
				Date:        "2026-12-01",
				GuestCount:  10,
				TotalAmount: 1000,
				PaymentCard: validCard(),
			},
			setupMock: func(repo *bookingMocks.MockBooking, catalog *catalogMocks.MockCatalog) {
				catalog.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(catalogModel.ServicePackage{}, nil)
			},
			wantErr: true,
		},
		{
			name: "tampered total amount rejected",
			req: dto.CreateBookingRequest{
				ServiceID:   "s4",
				Date:        "2026-10-20",
				GuestCount:  100,
				TotalAmount: 100,
				PaymentCard: validCard(),
			},
			setupMock: func(repo *bookingMocks.MockBooking, catalog *catalogMocks.MockCatalog) {
				catalog.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cateringPackage, nil)
			},
			wantErr: true,
		},
		{
			name: "insert error",
			req: dto.CreateBookingRequest{
				ServiceID:   "s1",
				Date:        "2026-12-01",
				GuestCount:  10,
				TotalAmount: 150000,
				PaymentCard: validCard(),
			},
			setupMock: func(repo *bookingMocks.MockBooking, catalog *catalogMocks.MockCatalog) {
				catalog.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(weddingPackage, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("insert error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := bookingMocks.NewMockBooking(ctrl)
			mockCatalog := catalogMocks.NewMockCatalog(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockKafka := kafkaMocks.NewMockClient(ctrl)
			mockMailer := mailerMocks.NewMockMailer(ctrl)
			mockOtel := mocks.NewOtel()

			cfg := &config.Config{}

			mockCache.EXPECT().
				Clear(gomock.Any(), gomock.Any()).
				Return(nil).
				AnyTimes()

			mockMailer.EXPECT().
				SendBookingConfirmation(gomock.Any(), gomock.Any()).
				Return(nil).
				AnyTimes()

			tt.setupMock(mockRepo, mockCatalog)

			svc := service.New(mockRepo, mockCatalog, cfg, mockCache, mockOtel, mockKafka, mockMailer)

			res, err := svc.Create(userContext("user-1", constant.RoleUser), tt.req)

			// Allow async notification and cache invalidation to run.
			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantAmount, res.TotalAmount)
				assert.Equal(t, model.StatusConfirmed, res.Status)
				assert.NotEmpty(t, res.ID)
			}
		})
	}
}

func TestBookingService_CreatePublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCatalog := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.Topics.BookingCreated = "bookings.created"

	mockCatalog.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(catalogModel.ServicePackage{
			ID:    "s1",
			Type:  catalogModel.TypeWedding,
			Title: "Royal Wedding Package",
			Price: 150000,
		}, nil)

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	published := make(chan string, 1)

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "bookings.created", gomock.Any()).
		DoAndReturn(func(_ context.Context, topic string, _ ...kafka.Message) error {
			published <- topic

			return nil
		})

	svc := service.New(mockRepo, mockCatalog, cfg, mockCache, mockOtel, mockKafka, mockMailer)

	req := dto.CreateBookingRequest{
		ServiceID:   "s1",
		Date:        "2026-12-01",
		GuestCount:  10,
		TotalAmount: 150000,
		PaymentCard: validCard(),
	}

	_, err := svc.Create(userContext("user-1", constant.RoleUser), req)
	assert.NoError(t, err)

	select {
	case topic := <-published:
		assert.Equal(t, "bookings.created", topic)
	case <-time.After(time.Second):
		t.Fatal("booking created event was not published")
	}
}

func TestBookingService_GetAll(t *testing.T) {
	newBooking := func(id, userID string, createdAt time.Time) model.Booking {
		booking := model.Booking{
			ID:          id,
			UserID:      userID,
			UserName:    "Test User",
			UserEmail:   "test@example.com",
			ServiceID:   "s1",
			Date:        timezone.Now(),
			GuestCount:  10,
			TotalAmount: 150000,
			Status:      model.StatusConfirmed,
		}
		booking.CreatedAt = createdAt
		booking.ModifiedAt = createdAt

		return booking
	}

	tests := []struct {
		name      string
		role      string
		setupMock func(repo *bookingMocks.MockBooking)
		wantIDs   []string
	}{
		{
			name: "admin sees all bookings",
			role: constant.RoleAdmin,
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().
					Count(gomock.Any(), gDto.FilterGroup{}).
					Return(2, nil)

				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gDto.FilterGroup{}).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
						// Newest-first is the default when the caller sends no sort.
						assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)

						return []model.Booking{
							newBooking("b2", "user-2", timezone.Now()),
							newBooking("b1", "user-1", timezone.Now().Add(-time.Hour)),
						}, nil
					})
			},
			wantIDs: []string{"b2", "b1"},
		},
		{
			name: "user sees only own bookings",
			role: constant.RoleUser,
			setupMock: func(repo *bookingMocks.MockBooking) {
				ownFilter := gDto.FilterGroup{
					Filters: []any{
						gDto.Filter{
							Field:    model.FieldUserID,
							Value:    "user-1",
							Operator: gDto.FilterOperatorEq,
							Table:    model.TableName,
						},
					},
				}

				repo.EXPECT().
					Count(gomock.Any(), ownFilter).
					Return(1, nil)

				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), ownFilter).
					Return([]model.Booking{
						newBooking("b1", "user-1", timezone.Now()),
					}, nil)
			},
			wantIDs: []string{"b1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := bookingMocks.NewMockBooking(ctrl)
			mockCatalog := catalogMocks.NewMockCatalog(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockKafka := kafkaMocks.NewMockClient(ctrl)
			mockMailer := mailerMocks.NewMockMailer(ctrl)
			mockOtel := mocks.NewOtel()

			cfg := &config.Config{}

			mockCache.EXPECT().
				Get(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(errors.New("cache miss")).
				AnyTimes()

			mockCache.EXPECT().
				Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil).
				AnyTimes()

			tt.setupMock(mockRepo)

			svc := service.New(mockRepo, mockCatalog, cfg, mockCache, mockOtel, mockKafka, mockMailer)

			res, err := svc.GetAll(userContext("user-1", tt.role), gDto.QueryParams{Page: 1, Limit: 10})

			time.Sleep(10 * time.Millisecond)

			assert.NoError(t, err)
			assert.Len(t, res.Bookings, len(tt.wantIDs))

			for i, id := range tt.wantIDs {
				assert.Equal(t, id, res.Bookings[i].ID)
			}
		})
	}
}

func TestBookingService_GetStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCatalog := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockRepo.EXPECT().
		GetStats(gomock.Any(), gDto.FilterGroup{}).
		Return(repository.Stats{
			TotalBookings: 3,
			TotalRevenue:  215000,
			TotalGuests:   160,
		}, nil)

	mockRepo.EXPECT().
		GetServiceRevenue(gomock.Any(), gDto.FilterGroup{}).
		Return([]repository.ServiceRevenue{
			{ServiceID: "s1", ServiceTitle: "Royal Wedding Package", Bookings: 1, Revenue: 150000},
			{ServiceID: "s4", ServiceTitle: "Premium Buffet Catering", Bookings: 2, Revenue: 65000},
		}, nil)

	svc := service.New(mockRepo, mockCatalog, cfg, mockCache, mockOtel, mockKafka, mockMailer)

	res, err := svc.GetStats(userContext("admin-1", constant.RoleAdmin))

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 3, res.TotalBookings)
	assert.Equal(t, int64(215000), res.TotalRevenue)
	assert.Equal(t, 160, res.TotalGuests)
	assert.Len(t, res.Services, 2)
	assert.Equal(t, "s1", res.Services[0].ServiceID)
	assert.Equal(t, int64(150000), res.Services[0].Revenue)
}
