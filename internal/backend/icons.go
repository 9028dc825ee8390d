package backend

import (
	"context"
	"path"
	"strings"
)

// StaticIconResolver maps file extensions to icon paths locally. Backends
// without a remote icon service use it so row enrichment behaves the same
// everywhere.
type StaticIconResolver struct {
	basePath string
}

func NewStaticIconResolver(basePath string) *StaticIconResolver {
	if basePath == "" {
		basePath = "/icons"
	}
	return &StaticIconResolver{basePath: strings.TrimSuffix(basePath, "/")}
}

var knownExtensions = map[string]string{
	"doc":  "icdoc.png",
	"docx": "icdocx.png",
	"xls":  "icxls.png",
	"xlsx": "icxlsx.png",
	"ppt":  "icppt.png",
	"pptx": "icpptx.png",
	"pdf":  "icpdf.png",
	"txt":  "ictxt.png",
	"zip":  "iczip.png",
	"html": "ichtm.png",
	"htm":  "ichtm.png",
	"aspx": "icspweb.png",
}

// ResolveIcons resolves each filename independently; slot i always belongs
// to filenames[i]. Unknown extensions resolve to the generic icon, empty
// filenames to nothing.
func (r *StaticIconResolver) ResolveIcons(_ context.Context, filenames []string) ([]string, error) {
	icons := make([]string, len(filenames))

	for i, filename := range filenames {
		if filename == "" {
			continue
		}

		ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
		if ext == "" {
			continue
		}

		icon, ok := knownExtensions[ext]
		if !ok {
			icon = "icgen.png"
		}
		icons[i] = r.basePath + "/" + icon
	}

	return icons, nil
}
