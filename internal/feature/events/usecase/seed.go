package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"community_backend/internal/feature/events/domain/entity"
)

// EnvKeySeedDefaultEvents は起動時シードを有効化する環境変数キーです。
const EnvKeySeedDefaultEvents = "SEED_DEFAULT_EVENTS"

// defaultEvents は初回起動時に投入される既定のイベント群です。
// 既存のスラッグはスキップされるため、登録者数カウンタが巻き戻ることはありません。
func defaultEvents() []entity.Event {
	return []entity.Event{
		{
			Slug:        "dsa-bootcamp",
			Title:       "DSA Bootcamp",
			Description: "Intensive 3-day workshop covering arrays, linked lists, trees, and dynamic programming.",
			Date:        time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
			Time:        "10:00 AM",
			Mode:        entity.ModeOffline,
			Location:    "Main Auditorium",
			Image:       "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?w=400&h=250&fit=crop",
		},
		{
			Slug:        "web-dev-hackathon",
			Title:       "Web Dev Hackathon",
			Description: "24-hour hackathon to build innovative web applications using modern technologies.",
			Date:        time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
			Time:        "9:00 AM",
			Mode:        entity.ModeHybrid,
			Location:    "Tech Lab",
			Image:       "https://images.unsplash.com/photo-1504384308090-c894fdcc538d?w=400&h=250&fit=crop",
		},
		{
			Slug:        "competitive-programming",
			Title:       "Competitive Programming",
			Description: "Weekly CP session focusing on problem-solving techniques and contest strategies.",
			Date:        time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC),
			Time:        "5:00 PM",
			Mode:        entity.ModeOnline,
			Location:    "Discord",
			Image:       "https://images.unsplash.com/photo-1555066931-4365d14bab8c?w=400&h=250&fit=crop",
		},
		{
			Slug:        "ai-ml-workshop",
			Title:       "AI/ML Workshop",
			Description: "Hands-on workshop covering machine learning fundamentals and neural networks.",
			Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Time:        "2:00 PM",
			Mode:        entity.ModeHybrid,
			Location:    "Innovation Center",
			Image:       "https://images.unsplash.com/photo-1555949963-ff9fe0c870eb?w=400&h=250&fit=crop",
		},
		{
			Slug:        "mobile-app-development",
			Title:       "Mobile App Development",
			Description: "Learn to build cross-platform mobile apps using React Native.",
			Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Time:        "11:00 AM",
			Mode:        entity.ModeOnline,
			Location:    "Zoom",
			Image:       "https://images.unsplash.com/photo-1512941937609-b56c5baeb8d8?w=400&h=250&fit=crop",
		},
		{
			Slug:        "cloud-computing-basics",
			Title:       "Cloud Computing Basics",
			Description: "Introduction to cloud services, deployment, and scalability concepts.",
			Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			Time:        "3:00 PM",
			Mode:        entity.ModeOffline,
			Location:    "Computer Lab",
			Image:       "https://images.unsplash.com/photo-1451187580459-43490279c0fa?w=400&h=250&fit=crop",
		},
	}
}

// SeedDefaults はSEED_DEFAULT_EVENTS=trueのとき既定イベントを投入します。
// スラッグ単位のinsert-if-missingなので再起動しても冪等です。
func (u *eventUsecase) SeedDefaults(ctx context.Context) error {
	if !strings.EqualFold(os.Getenv(EnvKeySeedDefaultEvents), "true") {
		return nil
	}

	for _, ev := range defaultEvents() {
		ev := ev
		if err := u.events.Create(ctx, &ev); err != nil {
			if errors.Is(err, ErrSlugExists) {
				continue
			}
			return fmt.Errorf("seed event %s: %w", ev.Slug, err)
		}
		slog.Info("seeded default event", "slug", ev.Slug)
	}
	return nil
}
