package mimetype

import "path/filepath"

// DefaultType is returned for files with a missing or unrecognized
// extension.
const DefaultType = "application/octet-stream"

// Resolve returns the MIME content type for a file path based on its
// extension.
func Resolve(path string) string {
	if t, ok := byExtension[filepath.Ext(path)]; ok {
		return t
	}
	return DefaultType
}

var byExtension = map[string]string{
	// text
	".css":      "text/css",
	".csv":      "text/csv",
	".htm":      "text/html",
	".html":     "text/html",
	".ics":      "text/calendar",
	".markdown": "text/markdown",
	".md":       "text/markdown",
	".rtf":      "application/rtf",
	".text":     "text/plain",
	".tsv":      "text/tab-separated-values",
	".txt":      "text/plain",
	".vcf":      "text/vcard",

	// application data and code
	".ini":    "text/plain",
	".js":     "text/javascript",
	".json":   "application/json",
	".jsonld": "application/ld+json",
	".log":    "text/plain",
	".mjs":    "text/javascript",
	".php":    "application/x-httpd-php",
	".sh":     "application/x-sh",
	".sql":    "application/sql",
	".toml":   "application/toml",
	".xhtml":  "application/xhtml+xml",
	".xml":    "application/xml",
	".yaml":   "application/yaml",
	".yml":    "application/yaml",

	// images
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".heic": "image/heic",
	".ico":  "image/vnd.microsoft.icon",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".psd":  "image/vnd.adobe.photoshop",
	".svg":  "image/svg+xml",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
	".xcf":  "image/x-xcf",

	// audio
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mid":  "audio/midi",
	".midi": "audio/midi",
	".mp3":  "audio/mpeg",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".weba": "audio/webm",
	".wma":  "audio/x-ms-wma",

	// video
	".3g2":  "video/3gpp2",
	".3gp":  "video/3gpp",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
	".m4v":  "video/mp4",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".ogv":  "video/ogg",
	".ts":   "video/mp2t",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",

	// documents
	".abw":  "application/x-abiword",
	".azw":  "application/vnd.amazon.ebook",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".epub": "application/epub+zip",
	".odp":  "application/vnd.oasis.opendocument.presentation",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".odt":  "application/vnd.oasis.opendocument.text",
	".pdf":  "application/pdf",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",

	// archives and packages
	".7z":   "application/x-7z-compressed",
	".apk":  "application/vnd.android.package-archive",
	".bz":   "application/x-bzip",
	".bz2":  "application/x-bzip2",
	".deb":  "application/vnd.debian.binary-package",
	".gz":   "application/gzip",
	".jar":  "application/java-archive",
	".rar":  "application/vnd.rar",
	".rpm":  "application/x-rpm",
	".tar":  "application/x-tar",
	".xz":   "application/x-xz",
	".zip":  "application/zip",
	".zst":  "application/zstd",

	// fonts
	".eot":   "application/vnd.ms-fontobject",
	".otf":   "font/otf",
	".ttf":   "font/ttf",
	".woff":  "font/woff",
	".woff2": "font/woff2",

	// certificates and keys
	".crt": "application/x-x509-ca-cert",
	".der": "application/x-x509-ca-cert",
	".p12": "application/x-pkcs12",
	".pem": "application/x-pem-file",

	// binaries and disk images
	".bin":  "application/octet-stream",
	".dll":  "application/octet-stream",
	".dmg":  "application/x-apple-diskimage",
	".exe":  "application/vnd.microsoft.portable-executable",
	".iso":  "application/x-iso9660-image",
	".msi":  "application/x-msdownload",
	".so":   "application/octet-stream",
	".wasm": "application/wasm",

	// miscellaneous
	".eml":     "message/rfc822",
	".mbox":    "application/mbox",
	".ogx":     "application/ogg",
	".sig":     "application/pgp-signature",
	".swf":     "application/x-shockwave-flash",
	".torrent": "application/x-bittorrent",
}
