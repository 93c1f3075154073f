package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/architeacher/device-registry/internal/adapters/repos"
	"github.com/architeacher/device-registry/internal/config"
	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/internal/infrastructure"
	"github.com/architeacher/device-registry/pkg/circuitbreaker"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/stretchr/testify/suite"
)

type DevicesCacheRepositoryTestSuite struct {
	suite.Suite
	miniRedis   *miniredis.Miniredis
	cacheClient *infrastructure.CacheClient
	repo        *repos.DevicesCacheRepository
}

func TestDevicesCacheRepositoryTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(DevicesCacheRepositoryTestSuite))
}

func (s *DevicesCacheRepositoryTestSuite) SetupTest() {
	var err error
	s.miniRedis, err = miniredis.Run()
	s.Require().NoError(err)

	cfg := config.Cache{
		Address:      s.miniRedis.Addr(),
		Password:     "",
		DB:           0,
		PoolSize:     5,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}

	breaker := circuitbreaker.New[[]byte](circuitbreaker.Config{
		Name:             "devices-cache-test",
		Enabled:          true,
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          time.Second,
		FailureThreshold: 5,
	})

	s.cacheClient = infrastructure.NewCacheClient(cfg, logger.NewTestLogger())
	s.repo = repos.NewDevicesCacheRepository(s.cacheClient, breaker, logger.NewTestLogger())
}

func (s *DevicesCacheRepositoryTestSuite) TearDownTest() {
	if s.cacheClient != nil {
		_ = s.cacheClient.Close()
	}
	if s.miniRedis != nil {
		s.miniRedis.Close()
	}
}

func (s *DevicesCacheRepositoryTestSuite) TestGetDevice_NotCached() {
	ctx := context.Background()
	id := model.NewDeviceID()

	result, err := s.repo.GetDevice(ctx, id)

	s.Require().NoError(err)
	s.Require().NotNil(result)
	s.Require().False(result.Hit)
	s.Require().Nil(result.Data)
}

func (s *DevicesCacheRepositoryTestSuite) TestSetAndGetDevice() {
	ctx := context.Background()
	device := model.NewDevice("Test Device", "Test Brand", model.StateAvailable)

	err := s.repo.SetDevice(ctx, device, time.Hour)
	s.Require().NoError(err)

	result, err := s.repo.GetDevice(ctx, device.ID)

	s.Require().NoError(err)
	s.Require().NotNil(result)
	s.Require().True(result.Hit)
	s.Require().NotNil(result.Data)
	s.Require().Equal(device.ID, result.Data.ID)
	s.Require().Equal(device.Name, result.Data.Name)
	s.Require().Equal(device.Brand, result.Data.Brand)
	s.Require().Equal(device.State, result.Data.State)
	s.Require().NotEmpty(result.Key)
}

func (s *DevicesCacheRepositoryTestSuite) TestSetDevice_AllStates() {
	ctx := context.Background()

	for _, state := range model.AllStates() {
		device := model.NewDevice("Device", "Brand", state)
		err := s.repo.SetDevice(ctx, device, time.Hour)
		s.Require().NoError(err)

		result, err := s.repo.GetDevice(ctx, device.ID)
		s.Require().NoError(err)
		s.Require().True(result.Hit)
		s.Require().Equal(state, result.Data.State)
	}
}

func (s *DevicesCacheRepositoryTestSuite) TestInvalidateDevice() {
	ctx := context.Background()
	device := model.NewDevice("Test Device", "Test Brand", model.StateAvailable)

	err := s.repo.SetDevice(ctx, device, time.Hour)
	s.Require().NoError(err)

	err = s.repo.InvalidateDevice(ctx, device.ID)
	s.Require().NoError(err)

	result, err := s.repo.GetDevice(ctx, device.ID)
	s.Require().NoError(err)
	s.Require().False(result.Hit)
}

func (s *DevicesCacheRepositoryTestSuite) TestInvalidateDevice_NotCached() {
	err := s.repo.InvalidateDevice(context.Background(), model.NewDeviceID())

	s.Require().NoError(err)
}

func (s *DevicesCacheRepositoryTestSuite) TestSetDevice_TTLExpiry() {
	ctx := context.Background()
	device := model.NewDevice("Test Device", "Test Brand", model.StateAvailable)

	err := s.repo.SetDevice(ctx, device, time.Minute)
	s.Require().NoError(err)

	s.miniRedis.FastForward(2 * time.Minute)

	result, err := s.repo.GetDevice(ctx, device.ID)
	s.Require().NoError(err)
	s.Require().False(result.Hit)
}

func (s *DevicesCacheRepositoryTestSuite) TestGetDevice_NilBreakerPassesThrough() {
	repo := repos.NewDevicesCacheRepository(s.cacheClient, nil, logger.NewTestLogger())
	device := model.NewDevice("Test Device", "Test Brand", model.StateInUse)

	err := repo.SetDevice(context.Background(), device, time.Hour)
	s.Require().NoError(err)

	result, err := repo.GetDevice(context.Background(), device.ID)
	s.Require().NoError(err)
	s.Require().True(result.Hit)
}
