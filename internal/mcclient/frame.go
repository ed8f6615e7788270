package mcclient

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Frame — одно сообщение протокола моста. На проводе это protobuf
// google.protobuf.Struct вида {type, seq, payload}.
type Frame struct {
	Type    string
	Seq     uint32
	Payload map[string]any
}

func encodeFrame(f Frame) ([]byte, error) {
	m := map[string]any{"type": f.Type}
	if f.Seq != 0 {
		m["seq"] = f.Seq
	}
	if f.Payload != nil {
		m["payload"] = f.Payload
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s frame: %w", f.Type, err)
	}
	return proto.Marshal(st)
}

func decodeFrame(data []byte) (Frame, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	fields := st.GetFields()
	f := Frame{
		Type:    fields["type"].GetStringValue(),
		Seq:     uint32(fields["seq"].GetNumberValue()),
		Payload: fields["payload"].GetStructValue().AsMap(),
	}
	if f.Type == "" {
		return Frame{}, fmt.Errorf("decode frame: missing type")
	}
	return f, nil
}

// хелперы для чтения полей payload: structpb отдаёт числа как float64

func str(p map[string]any, key string) string {
	s, _ := p[key].(string)
	return s
}

func num(p map[string]any, key string) float64 {
	n, _ := p[key].(float64)
	return n
}

func boolean(p map[string]any, key string) bool {
	b, _ := p[key].(bool)
	return b
}
