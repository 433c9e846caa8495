/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package router

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/radondb/shardcore/config"
	"github.com/radondb/shardcore/sharding"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// Table tuple.
type Table struct {
	// Table name
	Name string `json:",omitempty"`
	// Shard key
	ShardKey string `json:",omitempty"`
	// partition method
	Partition Partition `json:",omitempty"`
	// table config.
	TableConfig *config.TableConfig `json:"-"`
}

// Schema tuple.
type Schema struct {
	// database name
	DB string `json:",omitempty"`
	// tables map, key is the lower case table name
	Tables map[string]*Table `json:",omitempty"`
}

// Router tuple.
type Router struct {
	log  *xlog.Log
	mu   sync.RWMutex
	conf *config.RouterConfig

	// schemas map, key is database name
	Schemas map[string]*Schema `json:",omitempty"`
}

// NewRouter creates the new router.
func NewRouter(log *xlog.Log, conf *config.RouterConfig) *Router {
	return &Router{
		log:     log,
		conf:    conf,
		Schemas: make(map[string]*Schema),
	}
}

// LoadSchemas adds all the tables of the schemas.
func (r *Router) LoadSchemas(schemas []*config.SchemaConfig) error {
	for _, schema := range schemas {
		for _, tbl := range schema.Tables {
			if err := r.AddTable(schema.DB, tbl); err != nil {
				r.log.Error("router.load.db[%v].table[%v].error:%+v", schema.DB, tbl.Name, err)
				return err
			}
		}
	}
	return nil
}

// AddTable used to add a table router to schema map.
func (r *Router) AddTable(db string, tbl *config.TableConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addTable(db, tbl)
}

func (r *Router) addTable(db string, tbl *config.TableConfig) error {
	if db == "" {
		return errors.Errorf("router.database.should.not.be.empty")
	}
	if tbl == nil {
		return errors.New("table.config..can't.be.nil")
	}

	schema, ok := r.Schemas[db]
	if !ok {
		schema = &Schema{DB: db, Tables: make(map[string]*Table)}
		r.Schemas[db] = schema
	}
	key := strings.ToLower(tbl.Name)
	if _, ok := schema.Tables[key]; ok {
		return errors.Errorf("router.add.db[%v].table[%v].exists", db, tbl.Name)
	}
	table := &Table{
		Name:        tbl.Name,
		ShardKey:    tbl.ShardKey,
		TableConfig: tbl,
	}

	// methods
	switch MethodType(strings.ToUpper(tbl.ShardType)) {
	case MethodTypeHash:
		if tbl.ShardKey == "" {
			return errors.Errorf("router.table[%v].shardkey.can.not.be.empty", tbl.Name)
		}
		slots := tbl.Slots
		if slots == 0 {
			slots = r.conf.Slots
		}
		table.Partition = NewHash(r.log, slots, tbl)
	case MethodTypeList:
		if tbl.ShardKey == "" {
			return errors.Errorf("router.table[%v].shardkey.can.not.be.empty", tbl.Name)
		}
		table.Partition = NewList(r.log, tbl)
	case MethodTypeGlobal:
		table.ShardKey = ""
		table.Partition = NewGlobal(r.log, tbl)
	case MethodTypeSingle:
		table.ShardKey = ""
		table.Partition = NewSingle(r.log, tbl)
	default:
		return errors.Errorf("router.unsupport.shardtype:[%v]", tbl.ShardType)
	}
	if err := table.Partition.Build(); err != nil {
		return err
	}
	schema.Tables[key] = table
	return nil
}

// RemoveTable used to remove a table router from schema map.
func (r *Router) RemoveTable(db string, table string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	schema, ok := r.Schemas[db]
	if !ok {
		return errors.Errorf("router.can.not.find.db[%v]", db)
	}
	key := strings.ToLower(table)
	if _, ok = schema.Tables[key]; !ok {
		return errors.Errorf("router.can.not.find.table[%v]", table)
	}
	delete(schema.Tables, key)
	return nil
}

func (r *Router) getTable(database string, tableName string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if database == "" {
		return nil, errors.New("router.no.database.selected")
	}
	schema, ok := r.Schemas[database]
	if !ok {
		r.log.Error("router.can.not.find.db[%v]", database)
		return nil, errors.Errorf("router.can.not.find.db[%v]", database)
	}
	table, ok := schema.Tables[strings.ToLower(tableName)]
	if !ok {
		r.log.Error("router.can.not.find.table[%v]", tableName)
		return nil, errors.Errorf("router.can.not.find.table[%v]", tableName)
	}
	return table, nil
}

// ShardKey used to lookup shardkey from given database and table name.
func (r *Router) ShardKey(database string, tableName string) (string, error) {
	table, err := r.getTable(database, tableName)
	if err != nil {
		return "", err
	}
	return table.ShardKey, nil
}

// ShardingColumns implements sharding.ShardingRule.
// Unknown, global and single tables have none.
func (r *Router) ShardingColumns(database, tableName string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if schema, ok := r.Schemas[database]; ok {
		if table, ok := schema.Tables[strings.ToLower(tableName)]; ok && table.ShardKey != "" {
			return []string{table.ShardKey}
		}
	}
	return nil
}

// PartitionType used to get PartitionType from given database and table name.
func (r *Router) PartitionType(database string, tableName string) (MethodType, error) {
	table, err := r.getTable(database, tableName)
	if err != nil {
		return "", err
	}
	return table.Partition.Type(), nil
}

// TableConfig returns the config by database and tableName.
func (r *Router) TableConfig(database string, tableName string) (*config.TableConfig, error) {
	table, err := r.getTable(database, tableName)
	if err != nil {
		return nil, err
	}
	return table.TableConfig, nil
}

// Route returns the segments the sharding conditions reach, in segment order.
// No condition means every segment, always-false conditions mean none.
// A condition without the shard key of the table reaches every segment.
func (r *Router) Route(database string, tableName string, conds sharding.ShardingConditions) ([]Segment, error) {
	table, err := r.getTable(database, tableName)
	if err != nil {
		return nil, err
	}
	if conds.IsAlwaysFalse() {
		return nil, nil
	}
	segments := table.Partition.GetSegments()
	if conds.IsBroadcast() || table.ShardKey == "" {
		return segments, nil
	}

	column := sharding.NewColumn(table.ShardKey, table.Name)
	hit := make(map[int]struct{})
	for _, cond := range conds {
		if cond.IsAlwaysFalse() {
			continue
		}
		v, ok := cond.Get(column)
		if !ok {
			return segments, nil
		}
		idxs, err := table.Partition.Lookup(v)
		if err != nil {
			r.log.Error("router.partition.lookup[%s].error:%+v", v, err)
			return nil, err
		}
		for _, idx := range idxs {
			hit[idx] = struct{}{}
		}
	}

	idxs := make([]int, 0, len(hit))
	for idx := range hit {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	res := make([]Segment, 0, len(idxs))
	for _, idx := range idxs {
		res = append(res, segments[idx])
	}
	return res, nil
}

// Tables returns all the tables.
func (r *Router) Tables() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make(map[string][]string)
	for _, schema := range r.Schemas {
		tables := make([]string, 0, len(schema.Tables))
		for _, table := range schema.Tables {
			tables = append(tables, table.Name)
		}
		sort.Strings(tables)
		list[schema.DB] = tables
	}
	return list
}

// JSON returns the info of router.
func (r *Router) JSON() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bout, err := json.MarshalIndent(r, "", "\t")
	if err != nil {
		return err.Error()
	}
	return string(bout)
}
