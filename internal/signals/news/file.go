// internal/signals/news/file.go
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	apperrors "procurement-workers/internal/common/errors"
)

// ArticleFile serves a local snapshot of articles, kept for offline runs. The
// file uses the news API response shape and is returned whole for any query.
type ArticleFile struct {
	path string
}

func NewArticleFile(path string) *ArticleFile {
	return &ArticleFile{path: path}
}

func (f *ArticleFile) Search(ctx context.Context, _ string) ([]Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, apperrors.NewNewsFetchFailedError(fmt.Errorf("read %s: %w", f.path, err))
	}

	var snapshot struct {
		Articles []Article `json:"articles"`
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, apperrors.NewNewsFetchFailedError(fmt.Errorf("decode %s: %w", f.path, err))
	}
	if snapshot.Articles == nil {
		snapshot.Articles = []Article{}
	}
	return snapshot.Articles, nil
}
