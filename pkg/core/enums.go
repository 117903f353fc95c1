package core

import "strconv"

// GameType is the stage game mode code.
type GameType int32

const (
	GameTypeDeathmatchSolo  GameType = 0
	GameTypeDeathmatchTeam  GameType = 1
	GameTypeGladiatorSolo   GameType = 2
	GameTypeGladiatorTeam   GameType = 3
	GameTypeAssassinate     GameType = 4
	GameTypeTraining        GameType = 5
	GameTypeSurvival        GameType = 6
	GameTypeQuest           GameType = 7
	GameTypeBerserker       GameType = 8
	GameTypeDeathmatchTeam2 GameType = 9
	GameTypeDuel            GameType = 10
	GameTypeSkillmap        GameType = 11
	GameTypeGungame         GameType = 12
	GameTypeAll             GameType = 100
)

var gameTypeNames = map[GameType]string{
	GameTypeDeathmatchSolo:  "MMATCH_GAMETYPE_DEATHMATCH_SOLO",
	GameTypeDeathmatchTeam:  "MMATCH_GAMETYPE_DEATHMATCH_TEAM",
	GameTypeGladiatorSolo:   "MMATCH_GAMETYPE_GLADIATOR_SOLO",
	GameTypeGladiatorTeam:   "MMATCH_GAMETYPE_GLADIATOR_TEAM",
	GameTypeAssassinate:     "MMATCH_GAMETYPE_ASSASSINATE",
	GameTypeTraining:        "MMATCH_GAMETYPE_TRAINING",
	GameTypeSurvival:        "MMATCH_GAMETYPE_SURVIVAL",
	GameTypeQuest:           "MMATCH_GAMETYPE_QUEST",
	GameTypeBerserker:       "MMATCH_GAMETYPE_BERSERKER",
	GameTypeDeathmatchTeam2: "MMATCH_GAMETYPE_DEATHMATCH_TEAM2",
	GameTypeDuel:            "MMATCH_GAMETYPE_DUEL",
	GameTypeSkillmap:        "MMATCH_GAMETYPE_SKILLMAP",
	GameTypeGungame:         "MMATCH_GAMETYPE_GUNGAME",
	GameTypeAll:             "MMATCH_GAMETYPE_ALL",
}

func (g GameType) String() string {
	if n, ok := gameTypeNames[g]; ok {
		return n
	}
	return "UNKNOWN_GAMETYPE_" + strconv.Itoa(int(g))
}

// WeaponType is the weapon class reported with kills.
type WeaponType uint32

const (
	WeaponNone WeaponType = iota

	// melee
	WeaponDagger
	WeaponDualDagger
	WeaponKatana
	WeaponGreatSword
	WeaponDoubleKatana

	// range
	WeaponPistol
	WeaponPistolX2
	WeaponRevolver
	WeaponRevolverX2
	WeaponSMG
	WeaponSMGX2
	WeaponShotgun
	WeaponSawedShotgun
	WeaponRifle
	WeaponMachinegun
	WeaponRocket
	WeaponSniper

	// custom
	WeaponMedKit
	WeaponRepairKit
	WeaponBulletKit
	WeaponFlashBang
	WeaponFragmentation
	WeaponSmokeGrenade
	WeaponFood
	WeaponSkill

	WeaponEnchantFire
	WeaponEnchantCold
	WeaponEnchantLightning
	WeaponEnchantPoison
	WeaponEnchantStar
	WeaponEnchantEnd

	WeaponEffectRingSwordColor
	WeaponEffectRingSwordEnchant
	WeaponEffectRingAuraBerserker
	WeaponEffectRingShotEffect
	WeaponEffectRingDashEffect

	WeaponEnd
)

var weaponTypeNames = [...]string{
	"MWT_NONE",
	"MWT_DAGGER", "MWT_DUAL_DAGGER", "MWT_KATANA", "MWT_GREAT_SWORD", "MWT_DOUBLE_KATANA",
	"MWT_PISTOL", "MWT_PISTOLx2", "MWT_REVOLVER", "MWT_REVOLVERx2", "MWT_SMG", "MWT_SMGx2",
	"MWT_SHOTGUN", "MWT_SAWED_SHOTGUN", "MWT_RIFLE", "MWT_MACHINEGUN", "MWT_ROCKET", "MWT_SNIFER",
	"MWT_MED_KIT", "MWT_REPAIR_KIT", "MWT_BULLET_KIT", "MWT_FLASH_BANG", "MWT_FRAGMENTATION",
	"MWT_SMOKE_GRENADE", "MWT_FOOD", "MWT_SKILL",
	"MWT_ENCHANT_FIRE", "MWT_ENCHANT_COLD", "MWT_ENCHANT_LIGHTNING", "MWT_ENCHANT_POISON",
	"MWT_ENCHANT_STAR", "MWT_ENCHANT_END",
	"MWT_EFFECTRING_SWORDCOLOR", "MWT_EFFECTRING_SWORDENCHANT", "MWT_EFFECTRING_AURABERSERKER",
	"MWT_EFFECTRING_SHOTEFFECT", "MWT_EFFECTRING_DASHEFFECT",
	"MWT_END",
}

func (w WeaponType) String() string {
	if int(w) < len(weaponTypeNames) {
		return weaponTypeNames[w]
	}
	return "MWT_UNKNOWN_" + strconv.Itoa(int(w))
}

// RoundState is the match round phase.
type RoundState uint32

const (
	RoundPrepare RoundState = iota
	RoundCountdown
	RoundPlay
	RoundFinish
	RoundExit
	RoundFree
	RoundFailed
	RoundEnd
)

var roundStateNames = [...]string{"PREPARE", "COUNTDOWN", "PLAY", "FINISH", "EXIT", "FREE", "FAILED", "END"}

func (s RoundState) String() string {
	if int(s) < len(roundStateNames) {
		return roundStateNames[s]
	}
	return "ROUNDSTATE_" + strconv.Itoa(int(s))
}

// RoundResult is the outcome carried with a round transition.
type RoundResult uint32

const (
	RoundDraw RoundResult = iota
	RoundRedWin
	RoundBlueWin
	RoundResultEnd
)

var roundResultNames = [...]string{"DRAW", "RED_WIN", "BLUE_WIN", "END"}

func (r RoundResult) String() string {
	if int(r) < len(roundResultNames) {
		return roundResultNames[r]
	}
	return "ROUNDRESULT_" + strconv.Itoa(int(r))
}
