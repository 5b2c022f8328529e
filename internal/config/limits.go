package config

const (
	// MaxTitleLength is the maximum length for work titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxTitleLength = 255

	// MaxAbstractLength bounds the abstract text. 10000 characters is
	// roughly three pages, which is already generous for an abstract.
	MaxAbstractLength = 10000

	// MaxSchoolNameLength is the maximum length for school names.
	MaxSchoolNameLength = 255

	// MaxPersonNameLength is the maximum length for author and
	// supervisor names.
	MaxPersonNameLength = 255

	// MaxCategoryNameLength is the maximum length for category names.
	MaxCategoryNameLength = 255

	// MinYear and MaxYear bound plausible submission years. The archive
	// holds no works older than the competition itself.
	MinYear = 1981
	MaxYear = 2100

	// DefaultPageSize is used when a filter request names no page size.
	DefaultPageSize = 20

	// MaxPageSize caps requested page sizes to prevent unbounded scans.
	MaxPageSize = 100

	// MaxUploadSize caps PDF uploads (16 MB, matching the legacy limit).
	MaxUploadSize = 16 << 20
)
