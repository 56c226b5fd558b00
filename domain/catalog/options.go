package catalog

// WithID filters by the "id" column.
func WithID(id int64) Option {
	return WithCondition("id", id)
}

// WithIDIn filters by the "id" column using IN.
func WithIDIn(ids []int64) Option {
	return WithConditionIn("id", ids)
}

// WithTitle filters episodes by exact title.
func WithTitle(title string) Option {
	return WithCondition("title", title)
}

// WithSeason filters episodes by the "season_number" column.
func WithSeason(season int) Option {
	return WithCondition("season_number", season)
}

// WithEpisodeNumber filters episodes by the "episode_number" column.
func WithEpisodeNumber(number int) Option {
	return WithCondition("episode_number", number)
}

// WithName filters colors or subject matters by their name column.
// Both tables use "name".
func WithName(name string) Option {
	return WithCondition("name", name)
}

// WithHex filters colors by the "hex_code" column.
func WithHex(hex string) Option {
	return WithCondition("hex_code", hex)
}

// WithEpisodeID filters join rows by the "episode_id" column.
func WithEpisodeID(id int64) Option {
	return WithCondition("episode_id", id)
}

// WithColorID filters join rows by the "color_id" column.
func WithColorID(id int64) Option {
	return WithCondition("color_id", id)
}

// WithSubjectMatterID filters join rows by the "subject_matter_id" column.
func WithSubjectMatterID(id int64) Option {
	return WithCondition("subject_matter_id", id)
}

// WithAired filters episodes that have a known air date.
func WithAired() Option {
	return WithWhere("air_date IS NOT NULL")
}

// ByBroadcastOrder orders episodes by season then episode number.
func ByBroadcastOrder() []Option {
	return []Option{WithOrderAsc("season_number"), WithOrderAsc("episode_number")}
}
