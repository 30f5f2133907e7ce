package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"eventhub/config"
	"eventhub/infras/otel/mocks"
	s3Mocks "eventhub/infras/s3/mocks"
	catalogMocks "eventhub/internal/domains/catalog/mocks"
	"eventhub/internal/domains/catalog/model"
	"eventhub/internal/domains/catalog/model/dto"
	"eventhub/internal/domains/catalog/service"
	cacheMocks "eventhub/shared/cache/mocks"
	gDto "eventhub/shared/dto"
	"eventhub/shared/failure"
)

func newPackages() []model.ServicePackage {
	return []model.ServicePackage{
		{
			ID:    "s1",
			Type:  model.TypeWedding,
			Title: "Royal Wedding Package",
			Price: 150000,
		},
		{
			ID:    "s4",
			Type:  model.TypeCatering,
			Title: "Premium Buffet Catering",
			Price: 500,
		},
	}
}

func TestCatalogService_GetAll(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *catalogMocks.MockCatalog, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantItems int
	}{
		{
			name: "cache miss fetches from repository",
			setupMock: func(repo *catalogMocks.MockCatalog, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					AnyTimes()

				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)

				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(newPackages(), nil)

				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantItems: 2,
		},
		{
			name: "cache hit skips repository",
			setupMock: func(repo *catalogMocks.MockCatalog, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, ok := value.(*dto.GetServicePackagesResponse)
						if !ok {
							return errors.New("unexpected cache destination")
						}

						res.FromModels(newPackages(), 2, 10)

						return nil
					})
			},
			wantItems: 2,
		},
		{
			name: "repository failure",
			setupMock: func(repo *catalogMocks.MockCatalog, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					AnyTimes()

				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)

				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "count failure",
			setupMock: func(repo *catalogMocks.MockCatalog, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					AnyTimes()

				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := catalogMocks.NewMockCatalog(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockS3 := s3Mocks.NewMockS3(ctrl)
			mockOtel := mocks.NewOtel()

			cfg := &config.Config{}

			tt.setupMock(mockRepo, mockCache)

			svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

			res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			// Allow async cache writes to run.
			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, res.Services, tt.wantItems)
			}
		})
	}
}

func TestCatalogService_Get(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(repo *catalogMocks.MockCatalog, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful",
			id:   "s1",
			setupMock: func(repo *catalogMocks.MockCatalog, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(newPackages()[0], nil)

				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func(repo *catalogMocks.MockCatalog, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.ServicePackage{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "repository failure",
			id:   "s1",
			setupMock: func(repo *catalogMocks.MockCatalog, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.ServicePackage{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := catalogMocks.NewMockCatalog(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockS3 := s3Mocks.NewMockS3(ctrl)
			mockOtel := mocks.NewOtel()

			cfg := &config.Config{}

			tt.setupMock(mockRepo, mockCache)

			svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

			res, err := svc.Get(context.Background(), tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, res.ID)
			}
		})
	}
}

func TestCatalogService_CreateCustom(t *testing.T) {
	tests := []struct {
		name      string
		budget    string
		wantPrice int64
		insertErr error
		wantErr   bool
	}{
		{name: "low budget", budget: model.BudgetLow, wantPrice: 15000},
		{name: "medium budget", budget: model.BudgetMedium, wantPrice: 25000},
		{name: "high budget", budget: model.BudgetHigh, wantPrice: 80000},
		{name: "insert failure", budget: model.BudgetMedium, insertErr: errors.New("database error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := catalogMocks.NewMockCatalog(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockS3 := s3Mocks.NewMockS3(ctrl)
			mockOtel := mocks.NewOtel()

			cfg := &config.Config{}

			mockCache.EXPECT().
				Clear(gomock.Any(), gomock.Any()).
				Return(nil).
				AnyTimes()

			mockRepo.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, pkg model.ServicePackage) error {
					assert.NotEmpty(t, pkg.ID)
					assert.Equal(t, model.TypeCustom, pkg.Type)
					assert.Equal(t, "Enchanted Garden", pkg.Title)
					assert.Equal(t, tt.wantPrice, pkg.Price)
					assert.False(t, pkg.PerGuest())

					return tt.insertErr
				})

			svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

			req := dto.CreateCustomPackageRequest{
				EventType:   "Wedding",
				Budget:      tt.budget,
				Theme:       "Enchanted Garden",
				Suggestions: []string{"Fairy lights", "Floral arches"},
			}

			res, err := svc.CreateCustom(context.Background(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, model.TypeCustom, res.Type)
			assert.Equal(t, tt.wantPrice, res.Price)
			assert.Equal(t, "Custom Wedding based on AI recommendations.", res.Description)
		})
	}
}

func TestCatalogService_UploadImage(t *testing.T) {
	req := dto.UploadImageRequest{
		Image: &multipart.FileHeader{
			Filename: "decor.png",
			Size:     1024,
		},
	}

	tests := []struct {
		name      string
		setupMock func(repo *catalogMocks.MockCatalog, s3 *s3Mocks.MockS3)
		wantErr   bool
	}{
		{
			name: "successful",
			setupMock: func(repo *catalogMocks.MockCatalog, s3 *s3Mocks.MockS3) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(newPackages()[0], nil)

				s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://bucket.example.com/service_package/new.png", nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "upload failure",
			setupMock: func(repo *catalogMocks.MockCatalog, s3 *s3Mocks.MockS3) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(newPackages()[0], nil)

				s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("s3 unavailable"))
			},
			wantErr: true,
		},
		{
			name: "update failure removes uploaded file",
			setupMock: func(repo *catalogMocks.MockCatalog, s3 *s3Mocks.MockS3) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(newPackages()[0], nil)

				s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://bucket.example.com/service_package/new.png", nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))

				s3.EXPECT().
					DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := catalogMocks.NewMockCatalog(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockS3 := s3Mocks.NewMockS3(ctrl)
			mockOtel := mocks.NewOtel()

			cfg := &config.Config{}

			mockCache.EXPECT().
				Get(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(errors.New("cache miss")).
				AnyTimes()

			mockCache.EXPECT().
				Delete(gomock.Any(), gomock.Any()).
				Return(nil).
				AnyTimes()

			mockCache.EXPECT().
				Clear(gomock.Any(), gomock.Any()).
				Return(nil).
				AnyTimes()

			tt.setupMock(mockRepo, mockS3)

			svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

			res, err := svc.UploadImage(context.Background(), req, "s1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "https://bucket.example.com/service_package/new.png", res.Image)
			}
		})
	}
}
