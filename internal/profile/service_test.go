package profile

import (
	"context"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestGetReturnsDefaultsWhenMissing(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	p, err := svc.Get(context.Background(), "usr_1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.WorkHours != DefaultWorkHours {
		t.Errorf("WorkHours = %q, want %q", p.WorkHours, DefaultWorkHours)
	}
	if p.SleepHours != DefaultSleepHours {
		t.Errorf("SleepHours = %q, want %q", p.SleepHours, DefaultSleepHours)
	}
	if p.NoisePreference != DefaultNoisePreference {
		t.Errorf("NoisePreference = %q", p.NoisePreference)
	}
	if p.Bedrooms != DefaultBedrooms {
		t.Errorf("Bedrooms = %d, want %d", p.Bedrooms, DefaultBedrooms)
	}
	if p.Hobbies == nil || len(p.Hobbies) != 0 {
		t.Errorf("Hobbies = %v, want empty slice", p.Hobbies)
	}
}

func TestUpsertCreatesFromDefaults(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	p, err := svc.Upsert(context.Background(), "usr_1", &Input{
		WorkAddress:     strPtr("1 Main St, Austin, TX"),
		NoisePreference: strPtr("quiet"),
		Hobbies:         []string{"gym", "hiking"},
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if p.WorkAddress != "1 Main St, Austin, TX" {
		t.Errorf("WorkAddress = %q", p.WorkAddress)
	}
	if p.NoisePreference != "quiet" {
		t.Errorf("NoisePreference = %q", p.NoisePreference)
	}
	// Untouched fields keep their defaults.
	if p.WorkHours != DefaultWorkHours {
		t.Errorf("WorkHours = %q, want default", p.WorkHours)
	}
	if p.CommuteMode != DefaultCommuteMode {
		t.Errorf("CommuteMode = %q, want default", p.CommuteMode)
	}
}

func TestUpsertPartialUpdatePreservesFields(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "usr_1", &Input{
		WorkAddress: strPtr("1 Main St"),
		Hobbies:     []string{"reading"},
		Bedrooms:    intPtr(3),
	}); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}

	p, err := svc.Upsert(ctx, "usr_1", &Input{SleepHours: strPtr("22:00 - 06:00")})
	if err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if p.SleepHours != "22:00 - 06:00" {
		t.Errorf("SleepHours = %q", p.SleepHours)
	}
	if p.WorkAddress != "1 Main St" {
		t.Errorf("WorkAddress = %q, want preserved", p.WorkAddress)
	}
	if p.Bedrooms != 3 {
		t.Errorf("Bedrooms = %d, want preserved 3", p.Bedrooms)
	}
	if len(p.Hobbies) != 1 || p.Hobbies[0] != "reading" {
		t.Errorf("Hobbies = %v, want preserved", p.Hobbies)
	}
}

func TestRepositoryCopiesProfiles(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	stored := DefaultProfile("usr_1")
	stored.Hobbies = []string{"gym"}
	if err := repo.Upsert(ctx, stored); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.Get(ctx, "usr_1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	got.Hobbies[0] = "mutated"

	again, _ := repo.Get(ctx, "usr_1")
	if again.Hobbies[0] != "gym" {
		t.Errorf("stored hobbies mutated through returned copy: %v", again.Hobbies)
	}
}

func TestDelete(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "usr_1", &Input{WorkAddress: strPtr("x")}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := svc.Delete(ctx, "usr_1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, "usr_1"); err != ErrProfileNotFound {
		t.Errorf("Get() after delete = %v, want ErrProfileNotFound", err)
	}
}
