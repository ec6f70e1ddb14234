package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hearbill/internal/ai/noop"
	"hearbill/internal/domain"
	"hearbill/internal/port"
	"hearbill/internal/service"
	"hearbill/mocks"
)

func TestMarketingService_PromoCopy_DefaultsAudienceAndTone(t *testing.T) {
	copywriter := new(mocks.MockCopywriter)
	deviceRepo := new(mocks.MockDeviceRepo)
	svc := service.NewMarketingService(copywriter, deviceRepo)

	copywriter.On("PromoCopy", mock.Anything, "Signia Pure 312 AX",
		"adults with age-related hearing loss", "warm and reassuring").
		Return("Hear every moment.", nil)

	text, err := svc.PromoCopy(context.Background(), service.PromoCopyInput{Product: "Signia Pure 312 AX"})

	assert.NoError(t, err)
	assert.Equal(t, "Hear every moment.", text)
	copywriter.AssertExpectations(t)
}

func TestMarketingService_PromoCopy_ExplicitToneKept(t *testing.T) {
	copywriter := new(mocks.MockCopywriter)
	deviceRepo := new(mocks.MockDeviceRepo)
	svc := service.NewMarketingService(copywriter, deviceRepo)

	copywriter.On("PromoCopy", mock.Anything, "Phonak Audeo L90", "young professionals", "energetic").
		Return("Stay sharp.", nil)

	text, err := svc.PromoCopy(context.Background(), service.PromoCopyInput{
		Product:  "Phonak Audeo L90",
		Audience: "young professionals",
		Tone:     "energetic",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Stay sharp.", text)
}

func TestMarketingService_StockTrendSummary_AggregatesByModel(t *testing.T) {
	copywriter := new(mocks.MockCopywriter)
	deviceRepo := new(mocks.MockDeviceRepo)
	svc := service.NewMarketingService(copywriter, deviceRepo)

	deviceRepo.On("List", mock.Anything, domain.DeviceStatus(""), "", 0, 10000).Return([]domain.Device{
		{Brand: "Signia", Model: "Pure 312 AX", Status: domain.DeviceSold},
		{Brand: "Signia", Model: "Pure 312 AX", Status: domain.DeviceSold},
		{Brand: "Signia", Model: "Pure 312 AX", Status: domain.DeviceAvailable},
		{Brand: "Phonak", Model: "Audeo L90", Status: domain.DeviceAvailable},
		{Brand: "Phonak", Model: "Audeo L90", Status: domain.DeviceBooked},
	}, 5, nil)
	copywriter.On("StockTrendSummary", mock.Anything, []port.StockLine{
		{Brand: "Signia", Model: "Pure 312 AX", Sold: 2, Available: 1},
		{Brand: "Phonak", Model: "Audeo L90", Available: 1},
	}).Return("Signia Pure 312 AX is your best seller.", nil)

	text, err := svc.StockTrendSummary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "Signia Pure 312 AX is your best seller.", text)
	copywriter.AssertExpectations(t)
}

func TestMarketingService_NoopCopywriterReportsDisabled(t *testing.T) {
	deviceRepo := new(mocks.MockDeviceRepo)
	svc := service.NewMarketingService(noop.NewCopywriter(), deviceRepo)

	text, err := svc.PromoCopy(context.Background(), service.PromoCopyInput{Product: "Signia Pure 312 AX"})

	assert.Empty(t, text)
	assert.ErrorIs(t, err, domain.ErrCopywriterDisabled)
}
