package creative

import "fmt"

// Platform identifiers.
const (
	Facebook = "facebook"
	Twitter  = "twitter"
	TikTok   = "tiktok"
)

// SizeProfile is the target canvas for one platform.
type SizeProfile struct {
	ID     string
	Width  int
	Height int
	Ratio  string
	Label  string
}

// SizeLabel renders dimensions as "W×H".
func (p SizeProfile) SizeLabel() string {
	return fmt.Sprintf("%d×%d", p.Width, p.Height)
}

var profiles = []SizeProfile{
	{ID: Facebook, Width: 1080, Height: 1080, Ratio: "1:1", Label: "Facebook Feed"},
	{ID: Twitter, Width: 1200, Height: 675, Ratio: "16:9", Label: "X / Twitter"},
	{ID: TikTok, Width: 1080, Height: 1920, Ratio: "9:16", Label: "TikTok / Reels"},
}

// Profiles returns the platform sizes in output order.
func Profiles() []SizeProfile {
	out := make([]SizeProfile, len(profiles))
	copy(out, profiles)
	return out
}

// ProfileByID looks up a platform.
func ProfileByID(id string) (SizeProfile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return SizeProfile{}, false
}
