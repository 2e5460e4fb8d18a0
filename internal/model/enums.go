package model

// Domain enumerations. Every value is persisted by its textual identifier,
// never by ordinal, so reordering or appending values cannot corrupt stored
// rows. Extending any of these sets is append-only in production.

type GameMode string

const (
	GameModeStandard GameMode = "Standard"
	GameModeTaiko    GameMode = "Taiko"
	GameModeFruits   GameMode = "Fruits"
	GameModeMania    GameMode = "Mania"
)

func GameModes() []GameMode {
	return []GameMode{GameModeStandard, GameModeTaiko, GameModeFruits, GameModeMania}
}

func (m GameMode) Valid() bool {
	switch m {
	case GameModeStandard, GameModeTaiko, GameModeFruits, GameModeMania:
		return true
	}
	return false
}

type ScoreGrade string

const (
	GradeA  ScoreGrade = "A"
	GradeB  ScoreGrade = "B"
	GradeC  ScoreGrade = "C"
	GradeD  ScoreGrade = "D"
	GradeS  ScoreGrade = "S"
	GradeSH ScoreGrade = "SH"
	GradeX  ScoreGrade = "X"
	GradeXH ScoreGrade = "XH"
	GradeF  ScoreGrade = "F"
)

func ScoreGrades() []ScoreGrade {
	return []ScoreGrade{GradeA, GradeB, GradeC, GradeD, GradeS, GradeSH, GradeX, GradeXH, GradeF}
}

func (g ScoreGrade) Valid() bool {
	for _, v := range ScoreGrades() {
		if g == v {
			return true
		}
	}
	return false
}

// RankStatus is ordered: everything below Pending counts as unranked.
type RankStatus string

const (
	RankStatusGraveyard RankStatus = "Graveyard"
	RankStatusWip       RankStatus = "Wip"
	RankStatusPending   RankStatus = "Pending"
	RankStatusRanked    RankStatus = "Ranked"
	RankStatusApproved  RankStatus = "Approved"
	RankStatusQualified RankStatus = "Qualified"
	RankStatusLoved     RankStatus = "Loved"
)

func RankStatuses() []RankStatus {
	return []RankStatus{
		RankStatusGraveyard, RankStatusWip, RankStatusPending,
		RankStatusRanked, RankStatusApproved, RankStatusQualified, RankStatusLoved,
	}
}

func (s RankStatus) Valid() bool {
	for _, v := range RankStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// Unranked reports whether maps with this status are excluded from ranking.
func (s RankStatus) Unranked() bool {
	return s == RankStatusGraveyard || s == RankStatusWip || s == RankStatusPending
}

type PpVersion string

const (
	PpV1 PpVersion = "v1"
	PpV2 PpVersion = "v2"
)

func PpVersions() []PpVersion { return []PpVersion{PpV1, PpV2} }

func (v PpVersion) Valid() bool { return v == PpV1 || v == PpV2 }

type ScoreVersion string

const (
	ScoreV1 ScoreVersion = "v1"
	ScoreV2 ScoreVersion = "v2"
)

func ScoreVersions() []ScoreVersion { return []ScoreVersion{ScoreV1, ScoreV2} }

func (v ScoreVersion) Valid() bool { return v == ScoreV1 || v == ScoreV2 }

// RankingType selects the metric a leaderboard slot is ordered by.
type RankingType string

const (
	RankingScoreV1 RankingType = "score_v1"
	RankingScoreV2 RankingType = "score_v2"
	RankingPpV1    RankingType = "pp_v1"
	RankingPpV2    RankingType = "pp_v2"
)

func RankingTypes() []RankingType {
	return []RankingType{RankingScoreV1, RankingScoreV2, RankingPpV1, RankingPpV2}
}

func (t RankingType) Valid() bool {
	switch t {
	case RankingScoreV1, RankingScoreV2, RankingPpV1, RankingPpV2:
		return true
	}
	return false
}

type ChannelType string

const (
	ChannelPrivate     ChannelType = "private"
	ChannelPublic      ChannelType = "public"
	ChannelGroup       ChannelType = "group"
	ChannelMultiplayer ChannelType = "multiplayer"
	ChannelSpectator   ChannelType = "spectator"
)

func ChannelTypes() []ChannelType {
	return []ChannelType{ChannelPrivate, ChannelPublic, ChannelGroup, ChannelMultiplayer, ChannelSpectator}
}

func (t ChannelType) Valid() bool {
	switch t {
	case ChannelPrivate, ChannelPublic, ChannelGroup, ChannelMultiplayer, ChannelSpectator:
		return true
	}
	return false
}

type ChannelHandleType string

const (
	ChannelHandleJoin        ChannelHandleType = "join"
	ChannelHandleSendMessage ChannelHandleType = "send_message"
	ChannelHandleKickUser    ChannelHandleType = "kick_user"
	ChannelHandleMuteUser    ChannelHandleType = "mute_user"
)

func ChannelHandleTypes() []ChannelHandleType {
	return []ChannelHandleType{ChannelHandleJoin, ChannelHandleSendMessage, ChannelHandleKickUser, ChannelHandleMuteUser}
}

func (t ChannelHandleType) Valid() bool {
	switch t {
	case ChannelHandleJoin, ChannelHandleSendMessage, ChannelHandleKickUser, ChannelHandleMuteUser:
		return true
	}
	return false
}

// ScoreKind names which extension table owns the mode-specific part of a
// score row. It is a plain discriminator column, not a schema-level enum: the
// application write path is what guarantees exactly one extension row exists.
type ScoreKind string

const (
	ScoreKindClassic ScoreKind = "classic"
	ScoreKindGeneric ScoreKind = "generic"
)

func (k ScoreKind) Valid() bool { return k == ScoreKindClassic || k == ScoreKindGeneric }
