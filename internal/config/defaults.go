package config

import (
	_ "embed"

	"github.com/vovakirdan/portfolio-drive/internal/core"
)

//go:embed defaults/drive.yaml
var defaultDriveYAML []byte

// DefaultDriveConfig returns the built-in configuration. It mirrors the
// embedded YAML and is used when that cannot be parsed.
func DefaultDriveConfig() DriveConfig {
	return DriveConfig{
		Physics: DrivePhysics{
			Speed:           0.07,
			CollisionRadius: 1.0,
		},
		Timing: DriveTiming{
			AdvanceDelayMS: 1000,
		},
		Camera: DriveCamera{
			FollowOffset: 5,
			Height:       2,
		},
		Input: DriveInput{
			HoldInitialMS: 750,
			HoldRepeatMS:  150,
		},
		Content: DriveContent{
			Levels: []core.Popup{
				{
					Title:   "Level 1 Complete!",
					Message: "Welcome to Level 2",
					Content: "Hobbies: Reading, Singing, Volunteer work.",
				},
				{
					Title:   "Level 2 Complete!",
					Message: "Welcome to Level 3",
					Content: "Programming: C, C++, Java, MATLAB, HTML, CSS, JavaScript, three.js",
				},
				{
					Title:   "Congratulations!",
					Message: "You've completed the game.",
					Content: "Soft Skills:\n" +
						"• Active Listener, Teamwork, Observant\n" +
						"• Ability to work under pressure, Time management, Target-Oriented\n" +
						"• Adaptability, Curiosity to learn new things",
				},
			},
			Collision: core.Popup{
				Title:   "Collision Alert",
				Message: "You hit an obstacle! Restarting level...",
				Content: "Try avoiding obstacles to progress.",
			},
			Contact: core.Popup{
				Title:   "Contact Details",
				Message: "Reach out anytime!",
				Content: "Email: sonamprajapati253@gmail.com\n" +
					"Phone: 931-039-9805\n" +
					"LinkedIn: https://www.linkedin.com/in/sonam-prajapati-95404b294/\n" +
					"GitHub: https://github.com/Sonam253",
			},
			Intro: core.Popup{
				Title:   "Welcome!",
				Message: "Drive through three levels to explore the portfolio.",
				Content: "Up arrow drives forward, Left and Right steer.\n" +
					"Avoid the red blocks and reach the finish line.",
			},
		},
	}
}

// DefaultDriveYAML returns the embedded default YAML.
func DefaultDriveYAML() []byte {
	return defaultDriveYAML
}
