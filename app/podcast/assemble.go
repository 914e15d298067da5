package podcast

// Record maps each requested field name to its value. A key is present for
// every requested field; a nil value means the field was not found.
type Record map[string]any

// Result is the parsed podcast: channel metadata plus ordered episodes.
type Result struct {
	Meta     Record   `json:"meta"`
	Episodes []Record `json:"episodes"`
}

// Info extracts field from n and cleans it unless uncleaned is set.
func Info(n *Node, field string, uncleaned bool) any {
	value := Extract(field, n)
	if value != nil && !uncleaned {
		value = Clean(field, value)
	}
	return value
}

// AssembleMeta builds the channel metadata record.
func AssembleMeta(channel *Node, cfg *Config) (Record, error) {
	return assemble(channel, cfg, Meta)
}

// AssembleEpisode builds the record for a single item element.
func AssembleEpisode(item *Node, cfg *Config) (Record, error) {
	return assemble(item, cfg, Episodes)
}

// AssembleEpisodes builds one record per channel item, in document order.
// The first required-field violation aborts the whole call.
func AssembleEpisodes(channel *Node, cfg *Config) ([]Record, error) {
	items := channel.Child("item")
	episodes := make([]Record, 0, len(items))
	for _, item := range items {
		episode, err := AssembleEpisode(item, cfg)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, episode)
	}
	return episodes, nil
}

// Assemble builds the metadata record and the sorted episode list for channel.
func Assemble(channel *Node, cfg *Config) (*Result, error) {
	meta, err := AssembleMeta(channel, cfg)
	if err != nil {
		return nil, err
	}

	episodes, err := AssembleEpisodes(channel, cfg)
	if err != nil {
		return nil, err
	}
	SortEpisodes(episodes)

	return &Result{Meta: meta, Episodes: episodes}, nil
}

func assemble(n *Node, cfg *Config, kind Kind) (Record, error) {
	fields := cfg.fields[kind]
	record := make(Record, len(fields))
	for _, field := range fields {
		record[field] = Info(n, field, cfg.IsUncleaned(kind, field))
	}

	// Presence of the key is checked, not its value: a requested field that
	// extracted to nil still satisfies the requirement.
	for _, field := range cfg.required[kind] {
		if _, ok := record[field]; !ok {
			return nil, &RequiredFieldError{Kind: kind, Field: field}
		}
	}

	return record, nil
}
