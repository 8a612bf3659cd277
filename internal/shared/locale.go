package shared

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the catalog key.
const (
	MsgSlidePlaceholder = "Slide %d"
	MsgAudience         = "Target audience"
	MsgTotalDuration    = "Total duration"
	MsgAboutMinutes     = "about %s minutes"
	MsgChapters         = "Chapters"
	MsgChapterCount     = "%d chapters"

	MsgStarting        = "🚀 Starting the course generator..."
	MsgTopic           = "📚 Topic: %s"
	MsgAudienceLine    = "👥 Audience: %s"
	MsgDurationLine    = "⏱️ Duration: about %d minutes"
	MsgAllAgentsDone   = "✅ All agents finished!"
	MsgElapsed         = "⏱️ Total time: %s seconds"
	MsgRunFailed       = "❌ Generation failed: %s"
	MsgAlertFailed     = "Course generation failed: %s"
	MsgNetworkError    = "❌ Network error: %s"
	MsgAlertSystem     = "System error: %s"
	MsgSlideCount      = "📊 The course contains %d slides"
	MsgNeedContent     = "Please generate course content first"
	MsgVideoStart      = "🎬 Starting video generation..."
	MsgVideoPrepare    = "📦 Preparing slide data..."
	MsgVideoRender     = "🎨 Rendering slides..."
	MsgVideoAudio      = "🎵 Processing audio..."
	MsgVideoMux        = "🎞️ Composing video..."
	MsgVideoDone       = "✅ Video generation complete!"
	MsgVideoFailedLog  = "❌ Video generation failed: %s"
	MsgVideoFailed     = "Video generation failed: %s"
	MsgJSONDownloaded  = "💾 Course data downloaded (JSON): %s"
	MsgVideoDownloaded = "💾 Video downloaded: %s"

	MsgAppTitle        = "AI MOOC Generator"
	MsgSlides          = "Slides"
	MsgFieldTopic      = "Course topic"
	MsgFieldDuration   = "Duration (minutes)"
	MsgAgentCurriculum = "Curriculum designer"
	MsgAgentScript     = "Scriptwriter"
	MsgAgentVisual     = "Visual artist"
	MsgAgentProducer   = "Producer"
	MsgDismiss         = "press esc to dismiss"

	MsgSubmitIdle   = "🚀 Start generating course"
	MsgSubmitBusy   = "Generating..."
	MsgVideoIdle    = "🎥 Generate video"
	MsgVideoBusy    = "Generating video..."
	MsgDownloadIdle = "💾 Download"
)

var translations = map[string]string{
	MsgSlidePlaceholder: "投影片 %d",
	MsgAudience:         "目標受眾",
	MsgTotalDuration:    "總時長",
	MsgAboutMinutes:     "約 %s 分鐘",
	MsgChapters:         "章節數",
	MsgChapterCount:     "%d 個",

	MsgStarting:        "🚀 啟動 AI 磨課師系統...",
	MsgTopic:           "📚 主題：%s",
	MsgAudienceLine:    "👥 受眾：%s",
	MsgDurationLine:    "⏱️ 時長：約 %d 分鐘",
	MsgAllAgentsDone:   "✅ 所有 Agent 執行完成！",
	MsgElapsed:         "⏱️ 總耗時：%s 秒",
	MsgRunFailed:       "❌ 執行失敗：%s",
	MsgAlertFailed:     "課程生成失敗：%s",
	MsgNetworkError:    "❌ 網絡錯誤：%s",
	MsgAlertSystem:     "系統錯誤：%s",
	MsgSlideCount:      "📊 課程包含 %d 張投影片",
	MsgNeedContent:     "請先生成課程內容",
	MsgVideoStart:      "🎬 開始生成影片...",
	MsgVideoPrepare:    "📦 準備投影片數據...",
	MsgVideoRender:     "🎨 渲染投影片...",
	MsgVideoAudio:      "🎵 處理音訊...",
	MsgVideoMux:        "🎞️ 合成影片...",
	MsgVideoDone:       "✅ 影片生成完成！",
	MsgVideoFailedLog:  "❌ 影片生成失敗：%s",
	MsgVideoFailed:     "影片生成失敗：%s",
	MsgJSONDownloaded:  "💾 課程數據已下載（JSON 格式）：%s",
	MsgVideoDownloaded: "💾 影片已下載：%s",

	MsgAppTitle:        "AI 磨課師",
	MsgSlides:          "投影片",
	MsgFieldTopic:      "課程主題",
	MsgFieldDuration:   "課程時長（分鐘）",
	MsgAgentCurriculum: "課程設計師",
	MsgAgentScript:     "腳本編劇",
	MsgAgentVisual:     "視覺設計師",
	MsgAgentProducer:   "製作人",
	MsgDismiss:         "按 esc 關閉",

	MsgSubmitIdle:   "🚀 開始生成課程",
	MsgSubmitBusy:   "生成中...",
	MsgVideoIdle:    "🎥 生成影片",
	MsgVideoBusy:    "生成影片中...",
	MsgDownloadIdle: "💾 下載",
}

var (
	supported = []language.Tag{language.English, language.TraditionalChinese}
	matcher   = language.NewMatcher(supported)
	messages  = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, zh := range translations {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.TraditionalChinese, key, zh)
	}
	return b
}

// Locale formats user-facing strings for one language.
type Locale struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocale matches a BCP 47 tag such as "zh-TW" or "en" against the supported languages.
//
// Unknown or malformed tags fall back to English.
func NewLocale(tag string) Locale {
	_, idx, _ := matcher.Match(language.Make(tag))
	t := supported[idx]
	return Locale{tag: t, printer: message.NewPrinter(t, message.Catalog(messages))}
}

// Tag returns the matched language.
func (l Locale) Tag() language.Tag { return l.tag }

// T formats the message for key.
func (l Locale) T(key string, args ...any) string {
	if l.printer == nil {
		l = NewLocale("en")
	}
	return l.printer.Sprintf(key, args...)
}
