// Package emoji centralizes the pictographs used in user-facing posts.
package emoji

const (
	Hello       = "\U0001F44B" // 👋
	Page        = "\U0001F4C4" // 📄
	Date        = "\U0001F4C5" // 📅
	Pushpin     = "\U0001F4CD" // 📍
	Link        = "\U0001F517" // 🔗
	Earth       = "\U0001F30D" // 🌍
	Satellite   = "\U0001F6F0" // 🛰
	Rocket      = "\U0001F680" // 🚀
	Camera      = "\U0001F4F7" // 📷
	Star        = "⭐"     // ⭐
	Magnifier   = "\U0001F50D" // 🔍
	MovieCamera = "\U0001F3A5" // 🎥
	Label       = "\U0001F3F7" // 🏷
	Picture     = "\U0001F5BC" // 🖼
	Note        = "\U0001F4DD" // 📝
	Warning     = "⚠️" // ⚠️
	SandWatch   = "⏳"     // ⏳
)
