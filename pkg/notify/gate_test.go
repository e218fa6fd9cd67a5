package notify

import (
	"errors"
	"strings"
	"testing"

	"github.com/battray/battray/pkg/config"
	"github.com/battray/battray/pkg/powerinfo"
)

type recordingPoster struct {
	posted []string
	err    error
}

func (p *recordingPoster) Post(title, body string) error {
	if p.err != nil {
		return p.err
	}
	p.posted = append(p.posted, title+": "+body)
	return nil
}

func newTestGate(thresholds []int, lastNotified int) (*Gate, *recordingPoster, config.Config) {
	conf := config.NewFileFromConfig(&config.RawFileConfig{}, "")
	conf.SetThresholds(thresholds)
	conf.SetLastNotified(lastNotified)
	poster := &recordingPoster{}
	return NewGate(conf, poster), poster, conf
}

func TestKeyForPercentageTotality(t *testing.T) {
	valid := map[int]Key{
		5:   KeyFivePercent,
		10:  KeyTenPercent,
		15:  KeyFifteenPercent,
		20:  KeyTwentyPercent,
		100: KeyHundredPercent,
	}
	for pct := -10; pct <= 110; pct++ {
		want, ok := valid[pct]
		if !ok {
			want = KeyInvalid
		}
		if got := KeyForPercentage(pct); got != want {
			t.Errorf("KeyForPercentage(%d) = %v, want %v", pct, got, want)
		}
	}
}

func TestNewNotification(t *testing.T) {
	tests := []struct {
		name      string
		state     powerinfo.BatteryState
		wantNil   bool
		wantKey   Key
		wantInBod string
	}{
		{
			name:      "low threshold embeds percentage",
			state:     powerinfo.NewDischarging(10),
			wantKey:   KeyTenPercent,
			wantInBod: "10%",
		},
		{
			name:    "non-threshold percentage",
			state:   powerinfo.NewDischarging(42),
			wantNil: true,
		},
		{
			name:    "charging at zero percent is suppressed",
			state:   powerinfo.NewCharging(0),
			wantNil: true,
		},
		{
			name:      "hundred percent gets the charged message",
			state:     powerinfo.NewCharging(100),
			wantKey:   KeyHundredPercent,
			wantInBod: "fully charged",
		},
		{
			name:      "plugged and charged maps to the hundred key",
			state:     powerinfo.NewPluggedAndCharged(),
			wantKey:   KeyHundredPercent,
			wantInBod: "fully charged",
		},
		{
			name:      "charging at a low threshold still notifies",
			state:     powerinfo.NewCharging(5),
			wantKey:   KeyFivePercent,
			wantInBod: "5%",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNotification(tt.state)
			if tt.wantNil {
				if n != nil {
					t.Fatalf("NewNotification(%v) = %+v, want nil", tt.state, n)
				}
				return
			}
			if n == nil {
				t.Fatalf("NewNotification(%v) = nil, want key %v", tt.state, tt.wantKey)
			}
			if n.Key != tt.wantKey {
				t.Errorf("Key = %v, want %v", n.Key, tt.wantKey)
			}
			if !strings.Contains(n.Body, tt.wantInBod) {
				t.Errorf("Body = %q, should contain %q", n.Body, tt.wantInBod)
			}
		})
	}
}

func TestGateNotifiesOncePerThreshold(t *testing.T) {
	g, poster, _ := newTestGate([]int{10}, 0)

	posted, err := g.NotifyUser(powerinfo.NewDischarging(10))
	if err != nil {
		t.Fatalf("NotifyUser returned error: %v", err)
	}
	if !posted {
		t.Fatal("first crossing should notify")
	}

	posted, err = g.NotifyUser(powerinfo.NewDischarging(10))
	if err != nil {
		t.Fatalf("NotifyUser returned error: %v", err)
	}
	if posted {
		t.Error("same threshold must not notify twice in a row")
	}

	if len(poster.posted) != 1 {
		t.Errorf("posted %d notifications, want 1", len(poster.posted))
	}
}

func TestGateNotifiesAgainAfterInterveningThreshold(t *testing.T) {
	g, poster, _ := newTestGate([]int{5, 10}, 0)

	if posted, _ := g.NotifyUser(powerinfo.NewDischarging(10)); !posted {
		t.Fatal("10% should notify")
	}
	if posted, _ := g.NotifyUser(powerinfo.NewDischarging(5)); !posted {
		t.Fatal("5% should notify after 10%")
	}
	if posted, _ := g.NotifyUser(powerinfo.NewDischarging(10)); !posted {
		t.Fatal("10% should notify again after 5% was the last")
	}

	if len(poster.posted) != 3 {
		t.Errorf("posted %d notifications, want 3", len(poster.posted))
	}
}

func TestGateRespectsOptIn(t *testing.T) {
	g, poster, _ := newTestGate([]int{5}, 0)

	posted, err := g.NotifyUser(powerinfo.NewDischarging(10))
	if err != nil {
		t.Fatalf("NotifyUser returned error: %v", err)
	}
	if posted || len(poster.posted) != 0 {
		t.Error("a threshold outside the opted-in set must never post")
	}
}

func TestGateChargingAtZeroNeverPosts(t *testing.T) {
	g, poster, _ := newTestGate([]int{5, 10, 100}, 0)

	if posted, _ := g.NotifyUser(powerinfo.NewCharging(0)); posted {
		t.Error("charging at 0% must never post")
	}
	if len(poster.posted) != 0 {
		t.Errorf("posted %d notifications, want 0", len(poster.posted))
	}
}

func TestGateKeepsLastNotifiedOnPostFailure(t *testing.T) {
	conf := config.NewFileFromConfig(&config.RawFileConfig{}, "")
	conf.SetThresholds([]int{10})
	poster := &recordingPoster{err: errors.New("bus gone")}
	g := NewGate(conf, poster)

	posted, err := g.NotifyUser(powerinfo.NewDischarging(10))
	if err == nil {
		t.Fatal("expected delivery error")
	}
	if posted {
		t.Error("failed delivery must not count as posted")
	}
	if conf.LastNotified() != 0 {
		t.Error("failed delivery must not advance LastNotified")
	}
}

func TestGateUpdatesLastNotified(t *testing.T) {
	g, _, conf := newTestGate([]int{100}, 0)

	if posted, _ := g.NotifyUser(powerinfo.NewPluggedAndCharged()); !posted {
		t.Fatal("100% should notify")
	}
	if got := conf.LastNotified(); got != 100 {
		t.Errorf("LastNotified = %d, want 100", got)
	}
}
