package wherelib

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"
)

type IPProviderMock struct {
	mock.Mock
}

func (m *IPProviderMock) Lookup(ctx context.Context, ip net.IP) (IPLocation, error) {
	args := m.Called(ctx, ip)

	return args.Get(0).(IPLocation), args.Error(1)
}

func (m *IPProviderMock) Name() string {
	return m.Called().String(0)
}

type GeoProviderMock struct {
	mock.Mock
}

func (m *GeoProviderMock) Name() string {
	return m.Called().String(0)
}

func (m *GeoProviderMock) ZoomLevels() []int {
	return m.Called().Get(0).([]int)
}

func (m *GeoProviderMock) ReverseGeocode(ctx context.Context, req GeocodeRequest) (GeocodedAddress, error) {
	args := m.Called(ctx, req)

	return args.Get(0).(GeocodedAddress), args.Error(1)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(ip net.IP, name string, err error) {
	m.Called(ip, name, err)
}

func (m *LoggerMock) GeocodeError(coords Coordinates, name string, zoom int, err error) {
	m.Called(coords, name, zoom, err)
}

func (m *LoggerMock) MergeConflict(field, kept, dropped string) {
	m.Called(field, kept, dropped)
}

func floatPtr(value float64) *float64 {
	return &value
}
