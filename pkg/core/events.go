// pkg/core/events.go
package core

// Vec3 is a decoded 3-component vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Event is one decoded command payload. The set of implementations is closed.
type Event interface {
	Opcode() Opcode
	Kind() string
	isEvent()
}

// BasicInfo is a periodic movement update.
// LowerState, UpperState and SelectedSlot are -1 when the record omits them.
type BasicInfo struct {
	Time         float32
	Flags        uint8
	Position     Vec3
	Direction    Vec3
	Velocity     Vec3
	CameraDir    Vec3
	LowerState   int16
	UpperState   int16
	SelectedSlot int16
}

// ShotgunResult is either a hit on a target or a miss.
type ShotgunResult struct {
	Hit           bool
	Target        uint32
	Damage        int32
	PiercingRatio float32
	DamageType    int32
}

// Missed is the result of a pellet volley that hit nothing.
var Missed = ShotgunResult{}

// ShotgunHit is a shotgun volley and its primary target.
type ShotgunHit struct {
	Time    float32
	SelType uint16
	Result  ShotgunResult
}

// RoundStateChange reports a round transition.
type RoundStateChange struct {
	StageID uint32
	Round   uint32
	State   RoundState
	Result  RoundResult
}

// HPAPInfo is a health/armour snapshot.
type HPAPInfo struct {
	HP float32
	AP float32
}

// WeaponChange reports the newly selected weapon item.
type WeaponChange struct {
	WeaponID int32
}

// Dash carries raw short-vector position and direction.
type Dash struct {
	Position  [3]int16
	Direction [3]int16
	SelType   uint8
}

// Slash is a melee attack.
type Slash struct {
	Position  Vec3
	Direction Vec3
	Type      uint32
	ShotTime  float32
}

// Reload has no payload.
type Reload struct{}

// RangedShot is a special ranged shot.
type RangedShot struct {
	Time     float32
	Position Vec3
	To       Vec3
	Type     uint32
	SelType  uint32
}

// MotionFlag keeps the raw word of an undocumented motion payload.
type MotionFlag struct {
	Raw uint32
}

// Spawn carries raw unsigned short-vector position and direction.
type Spawn struct {
	MUID      uint32
	Position  [3]uint16
	Direction [3]uint16
}

// Death names the attacker of the sender.
type Death struct {
	AttackerMUID uint32
}

// Announcement is a server broadcast.
type Announcement struct {
	Type    uint32
	Message string
}

// AreaDamage is a massive/area attack.
type AreaDamage struct {
	Time      float32
	Position  Vec3
	Direction Vec3
}

// SkillUse is a skill activation.
type SkillUse struct {
	Time    float32
	SkillID int32
	SelType int32
}

// Chat is a stage chat message.
type Chat struct {
	Sender   uint64
	StageUID uint32
	Message  string
	Team     int32
}

// WorldItemPickup is an item picked up from the map.
type WorldItemPickup struct {
	MUID   uint32
	ItemID uint32
}

// Kill is the server's kill notification.
type Kill struct {
	Attacker    uint32
	AttackerArg uint32
	WeaponType  WeaponType
	Victim      uint32
	VictimArg   uint32
}

func (BasicInfo) Opcode() Opcode        { return OpBasicInfo }
func (ShotgunHit) Opcode() Opcode       { return OpShotgun }
func (RoundStateChange) Opcode() Opcode { return OpRoundState }
func (HPAPInfo) Opcode() Opcode         { return OpHPAPInfo }
func (WeaponChange) Opcode() Opcode     { return OpChangeWeapon }
func (Dash) Opcode() Opcode             { return OpDash }
func (Slash) Opcode() Opcode            { return OpSlash }
func (Reload) Opcode() Opcode           { return OpReload }
func (RangedShot) Opcode() Opcode       { return OpPeerShotSP }
func (MotionFlag) Opcode() Opcode       { return OpPeerSPMotion }
func (Spawn) Opcode() Opcode            { return OpSpawn }
func (Death) Opcode() Opcode            { return OpDie }
func (Announcement) Opcode() Opcode     { return OpAnnounce }
func (AreaDamage) Opcode() Opcode       { return OpMassive }
func (SkillUse) Opcode() Opcode         { return OpSkill }
func (Chat) Opcode() Opcode             { return OpChat }
func (WorldItemPickup) Opcode() Opcode  { return OpWorldItemPickup }
func (Kill) Opcode() Opcode             { return OpGameDead }

func (BasicInfo) Kind() string        { return "basic_info" }
func (ShotgunHit) Kind() string       { return "shotgun_hit" }
func (RoundStateChange) Kind() string { return "round_state" }
func (HPAPInfo) Kind() string         { return "hpap" }
func (WeaponChange) Kind() string     { return "weapon_change" }
func (Dash) Kind() string             { return "dash" }
func (Slash) Kind() string            { return "slash" }
func (Reload) Kind() string           { return "reload" }
func (RangedShot) Kind() string       { return "ranged_shot" }
func (MotionFlag) Kind() string       { return "motion_flag" }
func (Spawn) Kind() string            { return "spawn" }
func (Death) Kind() string            { return "death" }
func (Announcement) Kind() string     { return "announcement" }
func (AreaDamage) Kind() string       { return "area_damage" }
func (SkillUse) Kind() string         { return "skill" }
func (Chat) Kind() string             { return "chat" }
func (WorldItemPickup) Kind() string  { return "worlditem_pickup" }
func (Kill) Kind() string             { return "kill" }

func (BasicInfo) isEvent()        {}
func (ShotgunHit) isEvent()       {}
func (RoundStateChange) isEvent() {}
func (HPAPInfo) isEvent()         {}
func (WeaponChange) isEvent()     {}
func (Dash) isEvent()             {}
func (Slash) isEvent()            {}
func (Reload) isEvent()           {}
func (RangedShot) isEvent()       {}
func (MotionFlag) isEvent()       {}
func (Spawn) isEvent()            {}
func (Death) isEvent()            {}
func (Announcement) isEvent()     {}
func (AreaDamage) isEvent()       {}
func (SkillUse) isEvent()         {}
func (Chat) isEvent()             {}
func (WorldItemPickup) isEvent()  {}
func (Kill) isEvent()             {}
