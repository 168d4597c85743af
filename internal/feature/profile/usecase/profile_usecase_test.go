package usecase

import (
	"context"
	"errors"
	"testing"

	"community_backend/internal/feature/profile/domain/entity"
)

// mockProfileRepository is a mock implementation of the ProfileRepository interface.
type mockProfileRepository struct {
	FindByUserIDFunc func(ctx context.Context, userID uint) (*entity.UserProfile, error)
	FindByPRNFunc    func(ctx context.Context, prn string) (*entity.UserProfile, error)
	SaveFunc         func(ctx context.Context, profile *entity.UserProfile) error
}

func (m *mockProfileRepository) FindByUserID(ctx context.Context, userID uint) (*entity.UserProfile, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil // Default: not found
}

func (m *mockProfileRepository) FindByPRN(ctx context.Context, prn string) (*entity.UserProfile, error) {
	if m.FindByPRNFunc != nil {
		return m.FindByPRNFunc(ctx, prn)
	}
	return nil, nil // Default: not found
}

func (m *mockProfileRepository) Save(ctx context.Context, profile *entity.UserProfile) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, profile)
	}
	return nil // Default: success
}

func validInput() ProfileInput {
	return ProfileInput{
		FullName:  "Alice Smith",
		PRNNumber: "PRN123456",
		Class:     "TY-CS",
		Division:  entity.DivisionGIA,
		Bio:       "Hello there",
	}
}

func TestProfileUsecase_Upsert_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		mutate        func(in *ProfileInput)
		expectedField string
	}{
		{name: "short full name", mutate: func(in *ProfileInput) { in.FullName = "A" }, expectedField: "fullName"},
		{name: "prn too short", mutate: func(in *ProfileInput) { in.PRNNumber = "AB1" }, expectedField: "prnNumber"},
		{name: "prn with symbols", mutate: func(in *ProfileInput) { in.PRNNumber = "PRN-12345" }, expectedField: "prnNumber"},
		{name: "unknown division", mutate: func(in *ProfileInput) { in.Division = "XYZ" }, expectedField: "division"},
		{name: "missing class", mutate: func(in *ProfileInput) { in.Class = "" }, expectedField: "class"},
		{
			name: "oversized bio",
			mutate: func(in *ProfileInput) {
				b := make([]byte, 501)
				for i := range b {
					b[i] = 'x'
				}
				in.Bio = string(b)
			},
			expectedField: "bio",
		},
		{name: "non-image url", mutate: func(in *ProfileInput) { in.ProfileImage = "https://example.com/page.html" }, expectedField: "profileImage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewProfileUsecase(&mockProfileRepository{
				SaveFunc: func(ctx context.Context, profile *entity.UserProfile) error {
					t.Error("save must not run on invalid input")
					return nil
				},
			})

			in := validInput()
			tt.mutate(&in)

			_, err := uc.Upsert(ctx, 1, in)
			v, ok := AsValidation(err)
			if !ok {
				t.Fatalf("expected a validation error, got %v", err)
			}
			if _, present := v.Fields[tt.expectedField]; !present {
				t.Errorf("expected field %q in %v", tt.expectedField, v.Fields)
			}
		})
	}
}

func TestProfileUsecase_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a complete profile", func(t *testing.T) {
		var saved *entity.UserProfile
		uc := NewProfileUsecase(&mockProfileRepository{
			SaveFunc: func(ctx context.Context, profile *entity.UserProfile) error {
				saved = profile
				return nil
			},
		})

		got, err := uc.Upsert(ctx, 7, validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved == nil || saved.UserID != 7 {
			t.Fatal("expected the profile to be saved for user 7")
		}
		if !got.IsProfileComplete {
			t.Error("all required fields present, profile must be complete")
		}
	})

	t.Run("updates the existing profile in place", func(t *testing.T) {
		existing := &entity.UserProfile{ID: 3, UserID: 7, FullName: "Old Name", PRNNumber: "PRN123456"}
		var saved *entity.UserProfile
		uc := NewProfileUsecase(&mockProfileRepository{
			FindByUserIDFunc: func(ctx context.Context, userID uint) (*entity.UserProfile, error) {
				return existing, nil
			},
			SaveFunc: func(ctx context.Context, profile *entity.UserProfile) error {
				saved = profile
				return nil
			},
		})

		_, err := uc.Upsert(ctx, 7, validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved != existing {
			t.Error("expected the existing record to be updated, not replaced")
		}
		if saved.FullName != "Alice Smith" {
			t.Errorf("expected updated name, got %q", saved.FullName)
		}
	})

	t.Run("rejects another user's PRN", func(t *testing.T) {
		uc := NewProfileUsecase(&mockProfileRepository{
			FindByPRNFunc: func(ctx context.Context, prn string) (*entity.UserProfile, error) {
				return &entity.UserProfile{ID: 9, UserID: 99, PRNNumber: prn}, nil
			},
		})

		_, err := uc.Upsert(ctx, 7, validInput())
		if !errors.Is(err, ErrPRNExists) {
			t.Errorf("expected ErrPRNExists, got %v", err)
		}
	})

	t.Run("keeping one's own PRN is not a conflict", func(t *testing.T) {
		uc := NewProfileUsecase(&mockProfileRepository{
			FindByPRNFunc: func(ctx context.Context, prn string) (*entity.UserProfile, error) {
				return &entity.UserProfile{ID: 3, UserID: 7, PRNNumber: prn}, nil
			},
			FindByUserIDFunc: func(ctx context.Context, userID uint) (*entity.UserProfile, error) {
				return &entity.UserProfile{ID: 3, UserID: 7, PRNNumber: "PRN123456"}, nil
			},
		})

		if _, err := uc.Upsert(ctx, 7, validInput()); err != nil {
			t.Errorf("re-saving one's own PRN must succeed, got %v", err)
		}
	})

	t.Run("extracts the cloudinary public id", func(t *testing.T) {
		var saved *entity.UserProfile
		uc := NewProfileUsecase(&mockProfileRepository{
			SaveFunc: func(ctx context.Context, profile *entity.UserProfile) error {
				saved = profile
				return nil
			},
		})

		in := validInput()
		in.ProfileImage = "https://res.cloudinary.com/demo/image/upload/v1712345678/profiles/alice.jpg"

		_, err := uc.Upsert(ctx, 7, in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.CloudinaryPublicID == nil || *saved.CloudinaryPublicID != "profiles/alice" {
			t.Errorf("expected public id profiles/alice, got %v", saved.CloudinaryPublicID)
		}
	})

	t.Run("non-cloudinary image keeps a nil public id", func(t *testing.T) {
		var saved *entity.UserProfile
		uc := NewProfileUsecase(&mockProfileRepository{
			SaveFunc: func(ctx context.Context, profile *entity.UserProfile) error {
				saved = profile
				return nil
			},
		})

		in := validInput()
		in.ProfileImage = "https://example.com/photos/alice.png"

		_, err := uc.Upsert(ctx, 7, in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.ProfileImage == nil || *saved.ProfileImage != in.ProfileImage {
			t.Error("expected the image url to be stored")
		}
		if saved.CloudinaryPublicID != nil {
			t.Errorf("expected nil public id, got %q", *saved.CloudinaryPublicID)
		}
	})
}

func TestRecomputeComplete(t *testing.T) {
	p := &entity.UserProfile{FullName: "Alice", PRNNumber: "PRN123456", Class: "TY", Division: entity.DivisionSFI}
	p.RecomputeComplete()
	if !p.IsProfileComplete {
		t.Error("expected complete profile")
	}

	p.Class = "  "
	p.RecomputeComplete()
	if p.IsProfileComplete {
		t.Error("blank class must make the profile incomplete")
	}
}
