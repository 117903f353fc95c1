package parser

import (
	"github.com/gzreplay/gzr/pkg/core"
)

// ParseSlash decodes a melee attack.
func (p *Parser) ParseSlash(payload []byte) (core.Slash, error) {
	var f struct {
		Position  [3]float32
		Direction [3]float32
		Type      uint32
		ShotTime  float32
	}
	if err := fields(core.OpSlash, payload, paramsOffset, &f); err != nil {
		return core.Slash{}, err
	}
	return core.Slash{
		Position:  vec(f.Position),
		Direction: vec(f.Direction),
		Type:      f.Type,
		ShotTime:  f.ShotTime,
	}, nil
}

// ParseRangedShot decodes a special ranged shot.
func (p *Parser) ParseRangedShot(payload []byte) (core.RangedShot, error) {
	var f struct {
		Time     float32
		Position [3]float32
		To       [3]float32
		Type     uint32
		SelType  uint32
	}
	if err := fields(core.OpPeerShotSP, payload, paramsOffset, &f); err != nil {
		return core.RangedShot{}, err
	}
	return core.RangedShot{
		Time:     f.Time,
		Position: vec(f.Position),
		To:       vec(f.To),
		Type:     f.Type,
		SelType:  f.SelType,
	}, nil
}

// ParseAreaDamage decodes a massive attack.
func (p *Parser) ParseAreaDamage(payload []byte) (core.AreaDamage, error) {
	var f struct {
		Time      float32
		Position  [3]float32
		Direction [3]float32
	}
	if err := fields(core.OpMassive, payload, paramsOffset, &f); err != nil {
		return core.AreaDamage{}, err
	}
	return core.AreaDamage{Time: f.Time, Position: vec(f.Position), Direction: vec(f.Direction)}, nil
}

func (p *Parser) ParseSkill(payload []byte) (core.SkillUse, error) {
	var f struct {
		Time    float32
		SkillID int32
		SelType int32
	}
	if err := fields(core.OpSkill, payload, paramsOffset, &f); err != nil {
		return core.SkillUse{}, err
	}
	return core.SkillUse{Time: f.Time, SkillID: f.SkillID, SelType: f.SelType}, nil
}

// ParseDeath decodes the attacker of the dying sender.
func (p *Parser) ParseDeath(payload []byte) (core.Death, error) {
	var attacker uint32
	if err := fields(core.OpDie, payload, serverOffset, &attacker); err != nil {
		return core.Death{}, err
	}
	return core.Death{AttackerMUID: attacker}, nil
}

// ParseKill decodes the server kill notification.
func (p *Parser) ParseKill(payload []byte) (core.Kill, error) {
	var f struct {
		Attacker    uint32
		AttackerArg uint32
		WeaponType  uint32
		_           uint32
		Victim      uint32
		VictimArg   uint32
	}
	if err := fields(core.OpGameDead, payload, serverOffset, &f); err != nil {
		return core.Kill{}, err
	}
	return core.Kill{
		Attacker:    f.Attacker,
		AttackerArg: f.AttackerArg,
		WeaponType:  core.WeaponType(f.WeaponType),
		Victim:      f.Victim,
		VictimArg:   f.VictimArg,
	}, nil
}
