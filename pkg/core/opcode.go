package core

import "strconv"

// Opcode identifies a command payload layout.
type Opcode uint16

// Opcodes with a known payload layout.
const (
	OpAnnounce        Opcode = 402
	OpJoinBattle      Opcode = 1402
	OpRoundState      Opcode = 1501
	OpGameDead        Opcode = 1512
	OpSpawn           Opcode = 1516
	OpChat            Opcode = 1520
	OpWorldItemPickup Opcode = 1542
	OpSlash           Opcode = 8000
	OpBasicInfo       Opcode = 8016
	OpShotgun         Opcode = 8022
	OpMassive         Opcode = 8801
	OpHPAPInfo        Opcode = 10014
	OpChangeWeapon    Opcode = 10022
	OpReload          Opcode = 10033
	OpPeerShotSP      Opcode = 10035
	OpSkill           Opcode = 10036
	OpDie             Opcode = 10041
	OpDash            Opcode = 10045
	OpPeerSPMotion    Opcode = 10046
)

// Opcodes that are named for diagnostics but not decoded.
const (
	OpPing       Opcode = 10001
	OpPong       Opcode = 10002
	OpReqHPAP    Opcode = 50054
	OpRespHPAP   Opcode = 50055
	OpDmgCounter Opcode = 60000
	OpNotifyHit  Opcode = 60001
)

var opcodeNames = map[Opcode]string{
	OpAnnounce:        "ANNOUNCE",
	OpJoinBattle:      "STAGE_JOIN_BATTLE",
	OpRoundState:      "ROUND_STATE",
	OpGameDead:        "GAME_DEAD",
	OpSpawn:           "SPAWN",
	OpChat:            "CHAT",
	OpWorldItemPickup: "WORLDITEM_PICKUP",
	OpSlash:           "SLASH",
	OpBasicInfo:       "BASICINFO",
	OpShotgun:         "SHOTGUN",
	OpMassive:         "MASSIVE",
	OpHPAPInfo:        "HPAPINFO",
	OpChangeWeapon:    "CHANGE_WEAPON",
	OpReload:          "RELOAD",
	OpPeerShotSP:      "PEER_SHOT_SP",
	OpSkill:           "SKILL",
	OpDie:             "DIE",
	OpDash:            "DASH",
	OpPeerSPMotion:    "PEER_SP_MOTION",
	OpPing:            "PING",
	OpPong:            "PONG",
	OpReqHPAP:         "REQ_HPAP",
	OpRespHPAP:        "RESP_HPAP",
	OpDmgCounter:      "DMG_COUNTER",
	OpNotifyHit:       "NOTIFY_HIT",
}

func (o Opcode) String() string {
	if n, ok := opcodeNames[o]; ok {
		return n
	}
	return "OPCODE_" + strconv.Itoa(int(o))
}

// Known reports whether the opcode has a payload decoder.
func (o Opcode) Known() bool {
	switch o {
	case OpAnnounce, OpJoinBattle, OpRoundState, OpGameDead, OpSpawn, OpChat,
		OpWorldItemPickup, OpSlash, OpBasicInfo, OpShotgun, OpMassive, OpHPAPInfo,
		OpChangeWeapon, OpReload, OpPeerShotSP, OpSkill, OpDie, OpDash, OpPeerSPMotion:
		return true
	}
	return false
}
