package models

// Requests for oracle HTTP endpoints. Defined in domain for consistency and reuse.

type ReportRequest struct {
	Token   string `query:"token" json:"token" validate:"required"`
	Symbol  string `query:"symbol" json:"symbol" default:"SOL" validate:"min=1,max=16"`
	DryRun  bool   `query:"dry_run" json:"dry_run"`
	MaxPost int    `query:"max_post" json:"max_post" default:"279" validate:"gte=40,lte=4000"`
}

type PreviewRequest struct {
	Symbol string `query:"symbol" json:"symbol" default:"SOL" validate:"min=1,max=16"`
}

type RecentRequest struct {
	N int `query:"n" json:"n" default:"10" validate:"gte=1,lte=200"`
}
