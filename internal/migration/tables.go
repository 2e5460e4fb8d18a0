package migration

import (
	"anoa.com/rhythmrank/internal/model"
)

// Enum type, constraint and index names are part of the on-disk contract:
// renaming any of them breaks Down against an existing schema.

const (
	EnumGameMode          = "game_mode"
	EnumScoreGrade        = "score_grade"
	EnumRankStatus        = "rank_status"
	EnumPpVersion         = "pp_version"
	EnumScoreVersion      = "score_version"
	EnumRankingType       = "ranking_type"
	EnumChannelType       = "channel_type"
	EnumChannelHandleType = "channel_handle_type"
)

// Enums returns the enumerated types in creation order.
func Enums() []EnumType {
	return []EnumType{
		{Name: EnumRankStatus, Values: enumValues(model.RankStatuses())},
		{Name: EnumGameMode, Values: enumValues(model.GameModes())},
		{Name: EnumScoreGrade, Values: enumValues(model.ScoreGrades())},
		{Name: EnumPpVersion, Values: enumValues(model.PpVersions())},
		{Name: EnumScoreVersion, Values: enumValues(model.ScoreVersions())},
		{Name: EnumRankingType, Values: enumValues(model.RankingTypes())},
		{Name: EnumChannelType, Values: enumValues(model.ChannelTypes())},
		{Name: EnumChannelHandleType, Values: enumValues(model.ChannelHandleTypes())},
	}
}

func enumValues[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

// Tables returns every table declaration. The slice order is the historical
// declaration order; the engine computes the actual creation order from the
// foreign-key graph, so inserting a new table here cannot dangle a reference.
func Tables() []Table {
	return []Table{
		usersTable(),
		privilegesTable(),
		userPrivilegesTable(),
		clientHardwareRecordsTable(),
		favouriteBeatmapsTable(),
		followersTable(),
		userSettingsTable(),
		beatmapsTable(),
		beatmapRatingsTable(),
		channelsTable(),
		channelUsersTable(),
		channelPrivilegesTable(),
		chatMessagesTable(),
		scoresTable(),
		scoresClassicTable(),
		scoresGenericTable(),
		leaderboardTable(),
		scorePpTable(),
		userPpTable(),
		userStatsTable(),
	}
}

func timestampCol(name string) Column {
	return Column{Name: name, Type: TypeTimestampTZ, NotNull: true, Default: "CURRENT_TIMESTAMP"}
}

func usersTable() Table {
	return Table{
		Name: "users",
		Columns: []Column{
			{Name: "id", Type: TypeInteger, NotNull: true, AutoIncrement: true},
			{Name: "name", Type: TypeString, Size: 16, NotNull: true, Unique: true},
			{Name: "name_safe", Type: TypeString, Size: 16, NotNull: true, Unique: true},
			{Name: "name_unicode", Type: TypeString, Size: 10, Unique: true},
			{Name: "name_unicode_safe", Type: TypeString, Size: 10, Unique: true},
			{Name: "password", Type: TypeString, NotNull: true},
			{Name: "email", Type: TypeString, Size: 64, NotNull: true, Unique: true},
			{Name: "country", Type: TypeString, Size: 8},
			timestampCol("created_at"),
			timestampCol("updated_at"),
		},
		PrimaryKey: []string{"id"},
		Indexes: []Index{
			{Name: "IDX_users_name_safe", Columns: []string{"name_safe"}, Unique: true},
			{Name: "IDX_users_name_unicode_safe", Columns: []string{"name_unicode_safe"}, Unique: true},
			{Name: "IDX_users_email", Columns: []string{"email"}, Unique: true},
		},
	}
}

func privilegesTable() Table {
	return Table{
		Name: "privileges",
		Columns: []Column{
			{Name: "id", Type: TypeBigInteger, NotNull: true, AutoIncrement: true},
			{Name: "name", Type: TypeString, NotNull: true, Unique: true},
			{Name: "description", Type: TypeString},
			{Name: "priority", Type: TypeSmallInteger, NotNull: true, Default: "1000"},
			{Name: "creator_id", Type: TypeInteger},
			timestampCol("created_at"),
		},
		PrimaryKey: []string{"id"},
		Indexes: []Index{
			{Name: "IDX_privileges_name", Columns: []string{"name"}, Unique: true},
		},
	}
}

func userPrivilegesTable() Table {
	return Table{
		Name: "user_privileges",
		Columns: []Column{
			{Name: "user_id", Type: TypeInteger, NotNull: true},
			{Name: "privilege_id", Type: TypeBigInteger, NotNull: true},
			{Name: "grantor_id", Type: TypeInteger, NotNull: true},
			timestampCol("created_at"),
		},
		PrimaryKey: []string{"user_id", "privilege_id"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_user_priv_user_id", Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
			{Name: "FK_user_priv_priv_id", Columns: []string{"privilege_id"}, RefTable: "privileges", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
			{Name: "FK_user_priv_grantor_id", Columns: []string{"grantor_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
		Indexes: []Index{
			{Name: "IDX_user_priv_priv_id", Columns: []string{"privilege_id"}},
		},
	}
}

func clientHardwareRecordsTable() Table {
	return Table{
		Name: "client_hardware_records",
		Columns: []Column{
			{Name: "user_id", Type: TypeInteger, NotNull: true},
			{Name: "time_offset", Type: TypeInteger, NotNull: true},
			{Name: "path_hash", Type: TypeChar, Size: 32, NotNull: true},
			{Name: "adapters", Type: TypeString, NotNull: true},
			{Name: "adapters_hash", Type: TypeChar, Size: 32, NotNull: true},
			{Name: "uninstall_id", Type: TypeChar, Size: 32, NotNull: true},
			{Name: "disk_id", Type: TypeChar, Size: 32, NotNull: true},
			{Name: "used_times", Type: TypeInteger, NotNull: true, Default: "1"},
			timestampCol("created_at"),
			timestampCol("updated_at"),
		},
		PrimaryKey: []string{"user_id", "path_hash", "adapters_hash", "uninstall_id", "disk_id"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_client_hardware_records_user_id", Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
	}
}

func favouriteBeatmapsTable() Table {
	return Table{
		Name: "favourite_beatmaps",
		Columns: []Column{
			{Name: "user_id", Type: TypeInteger, NotNull: true},
			{Name: "beatmapset_id", Type: TypeInteger, NotNull: true},
			{Name: "comment", Type: TypeString, Size: 15},
			timestampCol("created_at"),
		},
		PrimaryKey: []string{"user_id", "beatmapset_id"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_favourite_beatmaps_user_id", Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
		Indexes: []Index{
			{Name: "IDX_favourite_beatmaps_user_id", Columns: []string{"user_id"}},
		},
	}
}

func followersTable() Table {
	return Table{
		Name: "followers",
		Columns: []Column{
			{Name: "user_id", Type: TypeInteger, NotNull: true},
			{Name: "follow_id", Type: TypeInteger, NotNull: true},
			{Name: "remark", Type: TypeString, Size: 16},
			timestampCol("created_at"),
		},
		PrimaryKey: []string{"user_id", "follow_id"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_followers_user_id", Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
			{Name: "FK_followers_follow_id", Columns: []string{"follow_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
		Indexes: []Index{
			{Name: "IDX_followers_user_id", Columns: []string{"user_id"}},
		},
	}
}

func userSettingsTable() Table {
	return Table{
		Name: "user_settings",
		Columns: []Column{
			{Name: "user_id", Type: TypeInteger, NotNull: true},
			{Name: "display_unicode_name", Type: TypeBoolean, NotNull: true, Default: "false"},
			{Name: "scoreboard_ranking_type", Type: TypeEnum, Enum: EnumRankingType, NotNull: true, Default: "'" + string(model.RankingScoreV1) + "'"},
			{Name: "invisible_online", Type: TypeBoolean, NotNull: true, Default: "false"},
		},
		PrimaryKey: []string{"user_id"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_user_settings_user_id", Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
	}
}

func beatmapsTable() Table {
	return Table{
		Name: "beatmaps",
		Columns: []Column{
			{Name: "bid", Type: TypeInteger, NotNull: true},
			{Name: "sid", Type: TypeInteger, NotNull: true},
			{Name: "md5", Type: TypeChar, Size: 32, NotNull: true, Unique: true},
			{Name: "title", Type: TypeString, NotNull: true},
			{Name: "file_name", Type: TypeString, NotNull: true},
			{Name: "artist", Type: TypeString, NotNull: true},
			{Name: "diff_name", Type: TypeString, NotNull: true},
			{Name: "origin_server", Type: TypeString, NotNull: true},
			{Name: "mapper_name", Type: TypeString, NotNull: true},
			{Name: "mapper_id", Type: TypeString, NotNull: true},
			{Name: "rank_status", Type: TypeEnum, Enum: EnumRankStatus, NotNull: true, Default: "'" + string(model.RankStatusPending) + "'"},
			{Name: "game_mode", Type: TypeEnum, Enum: EnumGameMode, NotNull: true},
			{Name: "stars", Type: TypeDecimal, Precision: 16, Scale: 2, NotNull: true},
			{Name: "bpm", Type: TypeDecimal, Precision: 16, Scale: 2, NotNull: true},
			{Name: "cs", Type: TypeDecimal, Precision: 4, Scale: 2, NotNull: true},
			{Name: "od", Type: TypeDecimal, Precision: 4, Scale: 2, NotNull: true},
			{Name: "ar", Type: TypeDecimal, Precision: 4, Scale: 2, NotNull: true},
			{Name: "hp", Type: TypeDecimal, Precision: 4, Scale: 2, NotNull: true},
			{Name: "length", Type: TypeInteger, NotNull: true},
			{Name: "length_drain", Type: TypeInteger, NotNull: true},
			{Name: "source", Type: TypeString},
			{Name: "tags", Type: TypeString},
			{Name: "genre_id", Type: TypeSmallInteger},
			{Name: "language_id", Type: TypeSmallInteger},
			{Name: "storyboard", Type: TypeBoolean},
			{Name: "video", Type: TypeBoolean},
			{Name: "object_count", Type: TypeInteger},
			{Name: "slider_count", Type: TypeInteger},
			{Name: "spinner_count", Type: TypeInteger},
			{Name: "max_combo", Type: TypeInteger},
			{Name: "immutable", Type: TypeBoolean, NotNull: true, Default: "false"},
			timestampCol("last_update"),
			timestampCol("upload_time"),
			{Name: "approved_time", Type: TypeTimestampTZ, Default: "CURRENT_TIMESTAMP"},
			timestampCol("updated_at"),
		},
		PrimaryKey: []string{"bid"},
		Indexes: []Index{
			{Name: "IDX_beatmaps_sid", Columns: []string{"sid"}},
			{Name: "IDX_beatmaps_md5", Columns: []string{"md5"}, Unique: true},
			{Name: "IDX_beatmaps_file_name", Columns: []string{"file_name"}},
			{Name: "IDX_beatmaps_rank_status", Columns: []string{"rank_status"}},
		},
	}
}

func beatmapRatingsTable() Table {
	return Table{
		Name: "beatmap_ratings",
		Columns: []Column{
			{Name: "user_id", Type: TypeInteger, NotNull: true},
			{Name: "map_md5", Type: TypeChar, Size: 32, NotNull: true},
			{Name: "rating", Type: TypeTinyInteger, NotNull: true},
			timestampCol("updated_at"),
		},
		PrimaryKey: []string{"user_id", "map_md5"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_beatmap_ratings_user_id", Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
			{Name: "FK_beatmap_ratings_map_md5", Columns: []string{"map_md5"}, RefTable: "beatmaps", RefColumns: []string{"md5"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
		Indexes: []Index{
			{Name: "IDX_beatmap_ratings_map_md5", Columns: []string{"map_md5"}},
		},
	}
}

func channelsTable() Table {
	return Table{
		Name: "channels",
		Columns: []Column{
			{Name: "id", Type: TypeBigInteger, NotNull: true},
			{Name: "channel_type", Type: TypeEnum, Enum: EnumChannelType, NotNull: true},
			{Name: "name", Type: TypeString, Unique: true},
			{Name: "description", Type: TypeString},
			{Name: "icon", Type: TypeString},
			{Name: "auto_join", Type: TypeBoolean, NotNull: true, Default: "false"},
			{Name: "creator_id", Type: TypeBigInteger},
		},
		PrimaryKey: []string{"id"},
		Indexes: []Index{
			{Name: "IDX_channel_name", Columns: []string{"name"}},
		},
	}
}

func channelUsersTable() Table {
	return Table{
		Name: "channel_users",
		Columns: []Column{
			{Name: "channel_id", Type: TypeBigInteger, NotNull: true},
			{Name: "user_id", Type: TypeInteger, NotNull: true},
		},
		PrimaryKey: []string{"channel_id", "user_id"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_channel_users_channel_id", Columns: []string{"channel_id"}, RefTable: "channels", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
			{Name: "FK_channel_users_user_id", Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
		Indexes: []Index{
			{Name: "IDX_channel_users_user_id", Columns: []string{"user_id"}},
		},
	}
}

func channelPrivilegesTable() Table {
	return Table{
		Name: "channel_privileges",
		Columns: []Column{
			{Name: "channel_id", Type: TypeBigInteger, NotNull: true},
			{Name: "handle", Type: TypeEnum, Enum: EnumChannelHandleType, NotNull: true},
			{Name: "required_privilege_id", Type: TypeBigInteger, NotNull: true},
		},
		PrimaryKey: []string{"channel_id", "handle"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_channel_priv_channel_id", Columns: []string{"channel_id"}, RefTable: "channels", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
			{Name: "FK_channel_priv_priv_id", Columns: []string{"required_privilege_id"}, RefTable: "privileges", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
		Indexes: []Index{
			{Name: "IDX_channel_priv_priv_id", Columns: []string{"required_privilege_id"}},
		},
	}
}

func chatMessagesTable() Table {
	return Table{
		Name: "chat_messages",
		Columns: []Column{
			{Name: "id", Type: TypeBigInteger, NotNull: true, AutoIncrement: true},
			{Name: "sender_id", Type: TypeInteger, NotNull: true},
			{Name: "channel_id", Type: TypeBigInteger, NotNull: true},
			timestampCol("timestamp"),
			{Name: "content_string", Type: TypeText, NotNull: true},
			{Name: "content_html", Type: TypeText},
			{Name: "is_action", Type: TypeBoolean, NotNull: true, Default: "false"},
		},
		PrimaryKey: []string{"id"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_chat_msg_channel_id", Columns: []string{"channel_id"}, RefTable: "channels", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
			{Name: "FK_chat_msg_user_id", Columns: []string{"sender_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
		Indexes: []Index{
			{Name: "IDX_chat_msg_channel_id", Columns: []string{"channel_id"}},
		},
	}
}

func scoresTable() Table {
	return Table{
		Name: "scores",
		Columns: []Column{
			{Name: "id", Type: TypeBigInteger, NotNull: true, AutoIncrement: true},
			{Name: "map_hash", Type: TypeChar, Size: 32, NotNull: true},
			{Name: "user_id", Type: TypeInteger, NotNull: true},
			{Name: "cksm", Type: TypeString, NotNull: true, Unique: true},
			{Name: "kind", Type: TypeString, NotNull: true},
			{Name: "playtime", Type: TypeInteger, NotNull: true},
			{Name: "completed", Type: TypeBoolean, NotNull: true, Default: "false"},
			{Name: "invisible", Type: TypeBoolean, NotNull: true, Default: "false"},
			{Name: "verified_at", Type: TypeTimestampTZ},
			timestampCol("created_at"),
			timestampCol("updated_at"),
		},
		PrimaryKey: []string{"id"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_scores_user_id", Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
		Indexes: []Index{
			{Name: "IDX_scores_cksm", Columns: []string{"cksm"}, Unique: true},
			{Name: "IDX_scores_user_id", Columns: []string{"user_id"}},
		},
	}
}

func scoresClassicTable() Table {
	return Table{
		Name: "scores_classic",
		Columns: []Column{
			{Name: "id", Type: TypeBigInteger, NotNull: true},
			{Name: "mode", Type: TypeEnum, Enum: EnumGameMode, NotNull: true},
			{Name: "score_version", Type: TypeEnum, Enum: EnumScoreVersion, NotNull: true},
			{Name: "score", Type: TypeInteger, NotNull: true},
			{Name: "accuracy", Type: TypeDecimal, Precision: 6, Scale: 2, NotNull: true},
			{Name: "combo", Type: TypeInteger, NotNull: true},
			{Name: "mods", Type: TypeInteger, NotNull: true},
			{Name: "n300", Type: TypeInteger, NotNull: true},
			{Name: "n100", Type: TypeInteger, NotNull: true},
			{Name: "n50", Type: TypeInteger, NotNull: true},
			{Name: "miss", Type: TypeInteger, NotNull: true},
			{Name: "geki", Type: TypeInteger, NotNull: true},
			{Name: "katu", Type: TypeInteger, NotNull: true},
			{Name: "perfect", Type: TypeBoolean, NotNull: true, Default: "false"},
			{Name: "grade", Type: TypeEnum, Enum: EnumScoreGrade, NotNull: true},
			{Name: "client_flags", Type: TypeInteger, NotNull: true},
			{Name: "client_version", Type: TypeString, NotNull: true},
		},
		PrimaryKey: []string{"id"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_scores_classic_scores_id", Columns: []string{"id"}, RefTable: "scores", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
	}
}

func scoresGenericTable() Table {
	return Table{
		Name: "scores_generic",
		Columns: []Column{
			{Name: "id", Type: TypeBigInteger, NotNull: true},
			{Name: "mode", Type: TypeString, NotNull: true},
			{Name: "score", Type: TypeInteger, NotNull: true},
			{Name: "json", Type: TypeJSON, NotNull: true},
		},
		PrimaryKey: []string{"id"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_scores_generic_scores_id", Columns: []string{"id"}, RefTable: "scores", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
	}
}

func leaderboardTable() Table {
	return Table{
		Name: "leaderboard",
		Columns: []Column{
			{Name: "beatmap_id", Type: TypeInteger, NotNull: true},
			{Name: "mode", Type: TypeString, NotNull: true},
			{Name: "ranking_type", Type: TypeString, NotNull: true},
			{Name: "user_id", Type: TypeInteger, NotNull: true},
			{Name: "score_id", Type: TypeBigInteger, NotNull: true},
		},
		PrimaryKey: []string{"beatmap_id", "mode", "ranking_type"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_leaderboard_beatmap_id", Columns: []string{"beatmap_id"}, RefTable: "beatmaps", RefColumns: []string{"bid"}, OnUpdate: Cascade, OnDelete: Cascade},
			{Name: "FK_leaderboard_score_id", Columns: []string{"score_id"}, RefTable: "scores", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
			{Name: "FK_leaderboard_user_id", Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
	}
}

func scorePpTable() Table {
	return Table{
		Name: "score_pp",
		Columns: []Column{
			{Name: "score_id", Type: TypeBigInteger, NotNull: true},
			{Name: "mode", Type: TypeString, NotNull: true},
			{Name: "pp_version", Type: TypeString, NotNull: true},
			{Name: "pp", Type: TypeDecimal, Precision: 16, Scale: 2, NotNull: true},
			{Name: "raw_pp", Type: TypeJSON},
		},
		PrimaryKey: []string{"score_id", "mode", "pp_version"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_score_pp_scores_id", Columns: []string{"score_id"}, RefTable: "scores", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
	}
}

func userPpTable() Table {
	return Table{
		Name: "user_pp",
		Columns: []Column{
			{Name: "user_id", Type: TypeInteger, NotNull: true},
			{Name: "mode", Type: TypeString, NotNull: true},
			{Name: "pp_version", Type: TypeString, NotNull: true},
			{Name: "pp", Type: TypeDecimal, Precision: 16, Scale: 2, NotNull: true},
			{Name: "raw_pp", Type: TypeJSON},
		},
		PrimaryKey: []string{"user_id", "mode", "pp_version"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_user_pp_user_id", Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
	}
}

func userStatsTable() Table {
	return Table{
		Name: "user_stats",
		Columns: []Column{
			{Name: "user_id", Type: TypeInteger, NotNull: true},
			{Name: "mode", Type: TypeString, NotNull: true},
			{Name: "total_score", Type: TypeBigInteger, NotNull: true},
			{Name: "ranked_score", Type: TypeBigInteger, NotNull: true},
			{Name: "playcount", Type: TypeInteger, NotNull: true},
			{Name: "total_hits", Type: TypeInteger, NotNull: true},
			{Name: "accuracy", Type: TypeDecimal, Precision: 6, Scale: 2, NotNull: true},
			{Name: "max_combo", Type: TypeInteger, NotNull: true},
			{Name: "total_seconds_played", Type: TypeInteger, NotNull: true},
			{Name: "count300", Type: TypeInteger, NotNull: true},
			{Name: "count100", Type: TypeInteger, NotNull: true},
			{Name: "count50", Type: TypeInteger, NotNull: true},
			{Name: "count_miss", Type: TypeInteger, NotNull: true},
			{Name: "count_failed", Type: TypeInteger, NotNull: true},
			{Name: "count_quit", Type: TypeInteger, NotNull: true},
			timestampCol("updated_at"),
		},
		PrimaryKey: []string{"user_id", "mode"},
		ForeignKeys: []ForeignKey{
			{Name: "FK_user_stats_user_id", Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: Cascade, OnDelete: Cascade},
		},
	}
}
