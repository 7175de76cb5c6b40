package bot

import (
	"fmt"
	"strings"

	"github.com/Mraprguild8133/telegramwasabi/internal/progress"
	"github.com/Mraprguild8133/telegramwasabi/internal/registry"
)

const welcomeText = `🚀 *High-Speed File Sharing Bot*

This bot supports:
📁 Files up to 4GB
☁️ Wasabi cloud storage
🎥 MX Player & VLC compatible links
⚡ High-speed streaming

*Commands:*
/upload - Upload a file
/list - List your uploaded files
/download [file_id] - Get download link
/help - Show this help

Simply send any file to upload it automatically!`

const helpText = `📋 *Bot Commands:*

🔹 /start - Start the bot
🔹 /upload - Upload a file (or just send any file)
🔹 /list - List your uploaded files
🔹 /download [file_id] - Get streaming download link
🔹 /help - Show this help

*Supported Files:*
✅ Videos (MP4, MKV, AVI, etc.)
✅ Audio (MP3, FLAC, WAV, etc.)
✅ Documents (PDF, ZIP, etc.)
✅ Images (JPG, PNG, etc.)

*Features:*
⚡ Up to 4GB file size
🌐 Direct streaming links
📱 MX Player & VLC compatible
☁️ Secure cloud storage`

const uploadPromptText = "📤 Ready to upload!\n\n" +
	"Simply send me any file and I'll upload it to secure cloud storage.\n" +
	"Supported: Videos, Audio, Documents, Images (up to 4GB)"

const noFilesText = "📁 No files uploaded yet.\n\nSend me any file to get started!"

const unsupportedFileText = "❌ Unsupported file type."

const downloadUsageText = "❌ Please provide a file ID.\n\nUsage: /download [file_id]"

const fileNotFoundText = "❌ File not found. Use /list to see available files."

const linkFailedText = "❌ Failed to generate download link. Please try again."

func listText(records []registry.Record) string {
	if len(records) == 0 {
		return noFilesText
	}
	var b strings.Builder
	b.WriteString("📋 *Your Uploaded Files:*\n\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "📁 *%s*\n", rec.OriginalName)
		fmt.Fprintf(&b, "🆔 ID: `%s`\n", rec.ID)
		fmt.Fprintf(&b, "📊 Size: %s\n", progress.FormatSize(rec.SizeBytes))
		fmt.Fprintf(&b, "📅 Uploaded: %s\n", rec.CreatedAt.Format("2006-01-02"))
		fmt.Fprintf(&b, "⬇️ Download: /download %s\n\n", rec.ID)
	}
	return b.String()
}

func downloadText(rec registry.Record, streamingURL string) string {
	return fmt.Sprintf("📁 *%s*\n"+
		"📊 *Size:* %s\n\n"+
		"🔗 *Streaming Link (24h):*\n"+
		"`%s`\n\n"+
		"📱 *For Mobile Players:*\n"+
		"• Copy the link above\n"+
		"• Open MX Player or VLC\n"+
		"• Select \"Stream\" or \"Network Stream\"\n"+
		"• Paste the link\n\n"+
		"💡 *Tip:* This link works for direct streaming without downloading!",
		rec.OriginalName, progress.FormatSize(rec.SizeBytes), streamingURL)
}
