package model

import "testing"

func TestStage_IsActive(t *testing.T) {
	tests := []struct {
		stage    Stage
		expected bool
	}{
		{StageIdle, false},
		{StageValidatingURL, true},
		{StageCheckingConverter, true},
		{StageFetchingMetadata, true},
		{StageDownloading, true},
		{StageConverting, true},
		{StageComplete, false},
	}

	for _, test := range tests {
		result := test.stage.IsActive()
		if result != test.expected {
			t.Errorf("Stage(%s).IsActive() = %v, expected %v", test.stage, result, test.expected)
		}
	}
}

func TestStage_CanTransition(t *testing.T) {
	tests := []struct {
		from, to Stage
		expected bool
	}{
		{StageIdle, StageValidatingURL, true},
		{StageValidatingURL, StageCheckingConverter, true},
		{StageCheckingConverter, StageFetchingMetadata, true},
		{StageFetchingMetadata, StageDownloading, true},
		{StageDownloading, StageConverting, true},
		{StageConverting, StageComplete, true},
		{StageDownloading, StageComplete, true},
		{StageCheckingConverter, StageComplete, true},
		{StageComplete, StageIdle, true},

		// converter check is never skipped
		{StageValidatingURL, StageFetchingMetadata, false},
		{StageValidatingURL, StageDownloading, false},
		{StageIdle, StageComplete, false},
		{StageComplete, StageValidatingURL, false},
		{StageFetchingMetadata, StageConverting, false},
		{StageDownloading, StageFetchingMetadata, false},
		{Stage("bogus"), StageComplete, false},
	}

	for _, test := range tests {
		result := test.from.CanTransition(test.to)
		if result != test.expected {
			t.Errorf("%s -> %s = %v, expected %v", test.from, test.to, result, test.expected)
		}
	}
}

func TestStage_String(t *testing.T) {
	if StageDownloading.String() != "Downloading" {
		t.Errorf("Stage.String() = %s, expected Downloading", StageDownloading.String())
	}
}
