package transfer

import (
	"fmt"
	"time"

	"github.com/Mraprguild8133/telegramwasabi/internal/progress"
)

const (
	downloadCaption = "⚡ *TURBO DOWNLOAD* ⚡"
	downloadFooter  = "📡 *High-speed Telegram download...*"
	uploadCaption   = "⚡ *TURBO UPLOAD* ⚡"
	uploadFooter    = "⚡ *High-speed cloud upload in progress...*"

	downloadStartedText = "⚡ *TURBO DOWNLOAD INITIATED* ⚡\n\n" +
		"🚀 High-speed download from Telegram...\n" +
		"📡 Optimizing transfer protocols..."

	downloadFailedText = "❌ Download failed. Please try again."
	uploadFailedText   = "❌ Upload failed. Please try again."
)

func sizeLimitText(max int64) string {
	return fmt.Sprintf("❌ File too large! Maximum size is %s.", progress.FormatSize(max))
}

func downloadCompleteText(name string, size int64, elapsed time.Duration) string {
	speed := 0.0
	if elapsed > 0 {
		speed = float64(size) / elapsed.Seconds() / (1024 * 1024)
	}
	return fmt.Sprintf("✅ *TURBO DOWNLOAD COMPLETE* ⚡\n\n"+
		"📁 *File:* %s\n"+
		"📊 *Size:* %s\n"+
		"🚀 *Speed:* %.2f MB/s\n"+
		"⏱ *Time:* %s\n\n"+
		"☁️ *Initializing cloud upload...*",
		name, progress.FormatSize(size), speed, progress.FormatDuration(elapsed))
}

func uploadSuccessText(name string, size int64, id, streamingURL string) string {
	return fmt.Sprintf("✅ *TURBO UPLOAD COMPLETE!* ⚡\n\n"+
		"%s\n"+
		"📁 *File:* %s\n"+
		"📊 *Size:* %s\n"+
		"🆔 *File ID:* `%s`\n\n"+
		"🔗 *High-Speed Streaming Link:*\n"+
		"`%s`\n\n"+
		"📱 MX Player/VLC compatible, direct streaming\n"+
		"⬇️ *Get Link Again:* /download %s",
		progress.Bar(100), name, progress.FormatSize(size), id, streamingURL, id)
}
