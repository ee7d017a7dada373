package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primeauto/showroom-api/internal/bookings/repository"
	"github.com/primeauto/showroom-api/internal/cars"
	carrepo "github.com/primeauto/showroom-api/internal/cars/repository"
	carservice "github.com/primeauto/showroom-api/internal/cars/service"
)

type nopStore struct{}

func (nopStore) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, string, error) {
	return "http://img.local/cars/" + filename, "cars/" + filename, nil
}

func (nopStore) Delete(ctx context.Context, assetID string) error { return nil }

func newFixtures(t *testing.T) (*Service, *carservice.Service, *cars.Car) {
	t.Helper()
	carSvc := carservice.NewService(carrepo.NewMemoryRepo(), nopStore{})
	car, err := carSvc.Create(context.Background(), carservice.CreateInput{
		Name: "Vitz", Price: 500000, Description: "clean",
		Images: []carservice.ImageUpload{{Filename: "a.jpg", ContentType: "image/jpeg", Size: 1, Reader: strings.NewReader("x")}},
	})
	require.NoError(t, err)
	return NewService(repository.NewMemoryRepo(), carSvc), carSvc, car
}

func validInput(carID string) CreateInput {
	return CreateInput{
		Name: "Jane", Email: "jane@example.com", Phone: "0712345678",
		PreferredDate: "2026-09-01", Message: "morning please", CarID: carID,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	svc, _, car := newFixtures(t)

	b, err := svc.Create(ctx, validInput(car.ID.Hex()))
	require.NoError(t, err)
	assert.Equal(t, car.ID, b.CarID)
	assert.False(t, b.ID.IsZero())
	assert.False(t, b.CreatedAt.IsZero())
}

func TestCreateBookingValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, car := newFixtures(t)

	for _, mutate := range []func(*CreateInput){
		func(in *CreateInput) { in.Name = "" },
		func(in *CreateInput) { in.Email = "" },
		func(in *CreateInput) { in.Phone = "" },
		func(in *CreateInput) { in.PreferredDate = "" },
		func(in *CreateInput) { in.CarID = "" },
	} {
		in := validInput(car.ID.Hex())
		mutate(&in)
		_, err := svc.Create(ctx, in)
		require.ErrorIs(t, err, ErrValidation)
	}

	// message is optional
	in := validInput(car.ID.Hex())
	in.Message = ""
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)
}

func TestCreateBookingUnknownCar(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newFixtures(t)

	_, err := svc.Create(ctx, validInput("64f000000000000000000000"))
	require.ErrorIs(t, err, ErrCarNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "no booking may be persisted for a missing car")
}

func TestCreateBookingForDeletedCar(t *testing.T) {
	ctx := context.Background()
	svc, carSvc, car := newFixtures(t)

	require.NoError(t, carSvc.Delete(ctx, car.ID.Hex()))
	_, err := svc.Create(ctx, validInput(car.ID.Hex()))
	require.ErrorIs(t, err, ErrCarNotFound)
}

func TestListExpandsCar(t *testing.T) {
	ctx := context.Background()
	svc, _, car := newFixtures(t)

	_, err := svc.Create(ctx, validInput(car.ID.Hex()))
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Car)
	assert.Equal(t, "Vitz", list[0].Car.Name)
	assert.NotEmpty(t, list[0].Car.Images)
}

func TestListCarriesNilCarForDeletedCars(t *testing.T) {
	ctx := context.Background()
	svc, carSvc, car := newFixtures(t)

	_, err := svc.Create(ctx, validInput(car.ID.Hex()))
	require.NoError(t, err)
	require.NoError(t, carSvc.Delete(ctx, car.ID.Hex()))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Car)
}

func TestDeleteBooking(t *testing.T) {
	ctx := context.Background()
	svc, _, car := newFixtures(t)

	b, err := svc.Create(ctx, validInput(car.ID.Hex()))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, b.ID.Hex()))
	require.ErrorIs(t, svc.Delete(ctx, b.ID.Hex()), ErrNotFound)
}
