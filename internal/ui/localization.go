package ui

import (
	"fmt"
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle             = "app_title"
	KeyCookiesHeader        = "cookies_header"
	KeyCurrentCookies       = "current_cookies"
	KeyNotConfigured        = "not_configured"
	KeyChangeCookies        = "change_cookies"
	KeyEnterCookiesPath     = "enter_cookies_path"
	KeyCookiesUpdated       = "cookies_updated"
	KeyFileNotFound         = "file_not_found"
	KeyCurrentDownloadPath  = "current_download_path"
	KeyDefaultPath          = "default_path"
	KeyChangeDownloadPath   = "change_download_path"
	KeyEnterDownloadPath    = "enter_download_path"
	KeyDownloadPathUpdated  = "download_path_updated"
	KeySettingsSaveFailed   = "settings_save_failed"
	KeyEnterURL             = "enter_url"
	KeyDownloading          = "downloading"
	KeyDownloadCompleted    = "download_completed"
	KeyDownloadFailed       = "download_failed"
	KeyFoundVideo           = "found_video"
	KeyNoVideoFound         = "no_video_found"
	KeyRenameQuestion       = "rename_question"
	KeyCurrentFileName      = "current_file_name"
	KeyEnterNewName         = "enter_new_name"
	KeyFileExistsOverwrite  = "file_exists_overwrite"
	KeyRenameCancelled      = "rename_cancelled"
	KeyRenamed              = "renamed"
	KeyRenameFailed         = "rename_failed"
	KeyMenuTitle            = "menu_title"
	KeyMenuMP3              = "menu_mp3"
	KeyMenuWAV              = "menu_wav"
	KeyMenuSkip             = "menu_skip"
	KeyMenuQuit             = "menu_quit"
	KeyMenuChoose           = "menu_choose"
	KeyInvalidChoice        = "invalid_choice"
	KeyConverting           = "converting"
	KeyAudioExistsOverwrite = "audio_exists_overwrite"
	KeyConversionSkipped    = "conversion_skipped"
	KeyConversionFailed     = "conversion_failed"
	KeyConversionCompleted  = "conversion_completed"
	KeyAudioCreated         = "audio_created"
	KeyRenameAudioQuestion  = "rename_audio_question"
	KeyBurnHint             = "burn_hint"
	KeyAnotherQuestion      = "another_question"
	KeyGoodbye              = "goodbye"
	KeyConfirmSuffix        = "confirm_suffix"
	KeyDownloadDirFailed    = "download_dir_failed"
	KeyFFmpegMissing        = "ffmpeg_missing"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "system" || lang == "" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage derives a language code from the POSIX locale variables
func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(env)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		if len(value) >= 2 {
			return strings.ToLower(value[:2])
		}
	}
	return "en"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Textf returns the localized text for key formatted with args
func (l *Localization) Textf(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"de": "Deutsch",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:             "=== Video downloader and converter ===",
		KeyCookiesHeader:        "=== YouTube with cookies support ===",
		KeyCurrentCookies:       "Current cookies file: %s",
		KeyNotConfigured:        "not configured",
		KeyChangeCookies:        "Change the path to the cookies file?",
		KeyEnterCookiesPath:     "Full path to cookies.txt",
		KeyCookiesUpdated:       "Cookies path updated!",
		KeyFileNotFound:         "The file does not exist: %s",
		KeyCurrentDownloadPath:  "Current download path: %s",
		KeyDefaultPath:          "default",
		KeyChangeDownloadPath:   "Change the download path?",
		KeyEnterDownloadPath:    "New download path",
		KeyDownloadPathUpdated:  "Download path set to %s",
		KeySettingsSaveFailed:   "Could not save settings: %v",
		KeyEnterURL:             "Video URL (or 'q' to quit)",
		KeyDownloading:          "Downloading",
		KeyDownloadCompleted:    "Video downloaded.",
		KeyDownloadFailed:       "Download failed: %v",
		KeyFoundVideo:           "Found video: %s",
		KeyNoVideoFound:         "No video file found.",
		KeyRenameQuestion:       "Rename the file?",
		KeyCurrentFileName:      "Current file name: %s",
		KeyEnterNewName:         "New name (without extension), Enter to skip",
		KeyFileExistsOverwrite:  "A file with this name already exists. Overwrite?",
		KeyRenameCancelled:      "Rename cancelled.",
		KeyRenamed:              "File renamed to: %s",
		KeyRenameFailed:         "Rename failed: %v",
		KeyMenuTitle:            "What would you like to do?",
		KeyMenuMP3:              "Convert to MP3",
		KeyMenuWAV:              "Convert to audio CD format (WAV)",
		KeyMenuSkip:             "Do not convert, download a new video",
		KeyMenuQuit:             "Do not convert, quit",
		KeyMenuChoose:           "Choose 1-4",
		KeyInvalidChoice:        "Invalid choice.",
		KeyConverting:           "Converting to %s…",
		KeyAudioExistsOverwrite: "%s already exists. Overwrite?",
		KeyConversionSkipped:    "Conversion skipped.",
		KeyConversionFailed:     "Conversion failed: %v",
		KeyConversionCompleted:  "Conversion complete!",
		KeyAudioCreated:         "Audio file created: %s (%s)",
		KeyRenameAudioQuestion:  "Rename the audio file?",
		KeyBurnHint:             "You can now burn this file with your favourite CD burning program.",
		KeyAnotherQuestion:      "Download another video?",
		KeyGoodbye:              "Bye!",
		KeyConfirmSuffix:        "(y/n)",
		KeyDownloadDirFailed:    "Cannot use download path %s: %v",
		KeyFFmpegMissing:        "ffmpeg not available (%v); conversion will fail until it is installed.",
	}

	// German texts
	l.texts["de"] = map[string]string{
		KeyAppTitle:             "=== Videodownloader und Konverter ===",
		KeyCookiesHeader:        "=== Für YouTube mit Cookies-Unterstützung ===",
		KeyCurrentCookies:       "Aktuelle Cookies-Datei: %s",
		KeyNotConfigured:        "Nicht konfiguriert",
		KeyChangeCookies:        "Möchtest du den Pfad zur Cookies-Datei ändern?",
		KeyEnterCookiesPath:     "Gib den vollständigen Pfad zur cookies.txt ein",
		KeyCookiesUpdated:       "Cookies-Pfad erfolgreich aktualisiert!",
		KeyFileNotFound:         "Die angegebene Datei existiert nicht: %s",
		KeyCurrentDownloadPath:  "Aktueller Download-Pfad: %s",
		KeyDefaultPath:          "Standard",
		KeyChangeDownloadPath:   "Möchtest du den Download-Pfad ändern?",
		KeyEnterDownloadPath:    "Gib den gewünschten Download-Pfad ein",
		KeyDownloadPathUpdated:  "Download-Pfad erfolgreich auf %s gesetzt!",
		KeySettingsSaveFailed:   "Einstellungen konnten nicht gespeichert werden: %v",
		KeyEnterURL:             "Video-URL eingeben (oder 'q' zum Beenden)",
		KeyDownloading:          "Lade herunter",
		KeyDownloadCompleted:    "Video erfolgreich heruntergeladen.",
		KeyDownloadFailed:       "Fehler beim Herunterladen des Videos: %v",
		KeyFoundVideo:           "Gefundenes Video: %s",
		KeyNoVideoFound:         "Keine Video-Datei gefunden.",
		KeyRenameQuestion:       "Möchtest du die Datei umbenennen?",
		KeyCurrentFileName:      "Aktueller Dateiname: %s",
		KeyEnterNewName:         "Gib den neuen Namen ein (ohne Dateiendung) oder drücke Enter zum Überspringen",
		KeyFileExistsOverwrite:  "Eine Datei mit diesem Namen existiert bereits. Überschreiben?",
		KeyRenameCancelled:      "Umbenennen abgebrochen.",
		KeyRenamed:              "Datei erfolgreich umbenannt zu: %s",
		KeyRenameFailed:         "Fehler beim Umbenennen: %v",
		KeyMenuTitle:            "Was möchtest du tun?",
		KeyMenuMP3:              "In MP3 konvertieren",
		KeyMenuWAV:              "In Audio-CD Format (WAV) konvertieren",
		KeyMenuSkip:             "Nicht konvertieren und neues Video herunterladen",
		KeyMenuQuit:             "Nicht konvertieren und beenden",
		KeyMenuChoose:           "Wähle 1-4",
		KeyInvalidChoice:        "Ungültige Auswahl.",
		KeyConverting:           "Konvertiere zu %s…",
		KeyAudioExistsOverwrite: "%s existiert bereits. Überschreiben?",
		KeyConversionSkipped:    "Konvertierung übersprungen.",
		KeyConversionFailed:     "Fehler bei der Konvertierung: %v",
		KeyConversionCompleted:  "Konvertierung abgeschlossen!",
		KeyAudioCreated:         "Die Audiodatei wurde erstellt: %s (%s)",
		KeyRenameAudioQuestion:  "Möchtest du die Audiodatei umbenennen?",
		KeyBurnHint:             "Du kannst diese Datei nun mit deinem bevorzugten CD-Brennprogramm brennen.",
		KeyAnotherQuestion:      "Möchtest du ein weiteres Video herunterladen?",
		KeyGoodbye:              "Tschüss!",
		KeyConfirmSuffix:        "(j/n)",
		KeyDownloadDirFailed:    "Download-Pfad %s kann nicht verwendet werden: %v",
		KeyFFmpegMissing:        "ffmpeg nicht verfügbar (%v); die Konvertierung schlägt fehl, bis es installiert ist.",
	}
}
