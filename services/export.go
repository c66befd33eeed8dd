package services

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"sync"

	"breakage-exchange-api/models"
)

// csvHeader is the fixed column set of the item export. One data row per
// item, joined to its submission and product.
var csvHeader = []string{
	"submission_number",
	"submitted_by",
	"status",
	"created_at",
	"comment",
	"operation",
	"product_name",
	"product_code",
	"capacity",
	"quantity",
	"reason",
	"photo_count",
}

// WriteCSV writes the flat item export for the given submissions. The
// submissions must be loaded with Items, Items.Product and Items.Photos.
// encoding/csv handles quoting of delimiters, quotes and newlines.
func WriteCSV(w io.Writer, submissions []models.Submission) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, sub := range submissions {
		createdAt := ""
		if sub.CreateAt != nil {
			createdAt = sub.CreateAt.Format("2006-01-02 15:04:05")
		}
		comment := ""
		if sub.Comment != nil {
			comment = *sub.Comment
		}

		for _, item := range sub.Items {
			row := []string{
				sub.Number,
				sub.User.FullName(),
				sub.Status,
				createdAt,
				comment,
				item.Operation,
				item.Product.Name,
				item.Product.Code,
				item.Product.Capacity,
				strconv.Itoa(item.Quantity),
				item.Reason,
				strconv.Itoa(len(item.Photos)),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// PhotoEntry is one file planned into the photo archive.
type PhotoEntry struct {
	Name string // archive entry name
	Path string // path on disk
}

// ArchiveReport tells the caller how much of the requested batch made it
// into the archive.
type ArchiveReport struct {
	Requested int `json:"requested"`
	Completed int `json:"completed"`
}

// PhotoEntries plans archive entries for every photo of the given
// submissions. Names are deterministic: <item-index>_<product-code>_<photo-index>.<ext>
// with the item index running across the whole batch and photos ordered by
// their stored position.
func PhotoEntries(submissions []models.Submission) []PhotoEntry {
	var entries []PhotoEntry

	itemIndex := 0
	for _, sub := range submissions {
		for _, item := range sub.Items {
			itemIndex++

			photos := make([]models.Photo, len(item.Photos))
			copy(photos, item.Photos)
			sort.Slice(photos, func(i, j int) bool {
				return photos[i].Position < photos[j].Position
			})

			for photoIndex, photo := range photos {
				name := fmt.Sprintf("%d_%s_%d.%s",
					itemIndex, item.Product.Code, photoIndex+1, extensionForMime(photo.MimeType))
				entries = append(entries, PhotoEntry{Name: name, Path: photo.StoredPath})
			}
		}
	}

	return entries
}

func extensionForMime(mime string) string {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	default:
		return "bin"
	}
}

// archiveReaders caps concurrent photo reads.
const archiveReaders = 4

// BuildPhotoArchive streams a ZIP of the planned entries to w. File reads
// run concurrently; the archive itself is written in entry order. A failed
// read drops that entry only, and the report carries completed vs requested
// counts so the caller can tell a partial batch from a full one.
func BuildPhotoArchive(w io.Writer, entries []PhotoEntry) (ArchiveReport, error) {
	report := ArchiveReport{Requested: len(entries)}

	contents := make([][]byte, len(entries))
	sem := make(chan struct{}, archiveReaders)
	var wg sync.WaitGroup

	for i := range entries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			data, err := os.ReadFile(entries[i].Path)
			if err != nil {
				// Skip this photo; the count mismatch reports it.
				return
			}
			contents[i] = data
		}(i)
	}
	wg.Wait()

	zw := zip.NewWriter(w)
	for i, entry := range entries {
		if contents[i] == nil {
			continue
		}
		f, err := zw.Create(entry.Name)
		if err != nil {
			zw.Close()
			return report, err
		}
		if _, err := f.Write(contents[i]); err != nil {
			zw.Close()
			return report, err
		}
		report.Completed++
	}

	if err := zw.Close(); err != nil {
		return report, err
	}
	return report, nil
}
