package worker

import (
	"context"

	"github.com/msto63/wishbrick/internal/protocol"
	"google.golang.org/grpc"
)

const (
	// ServiceName is the gRPC service every worker exposes.
	ServiceName = "wishbrick.v1.Worker"
	// CallMethod is the full name of the single unary method.
	CallMethod = "/" + ServiceName + "/Call"
)

// Service is the server side of the worker protocol.
type Service interface {
	Call(ctx context.Context, req *protocol.Request) (*protocol.Reply, error)
}

// ServiceDesc describes the worker service for grpc.Server.RegisterService.
// Messages travel with the JSON codec, so there is no generated code.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Service)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Call",
			Handler:    callHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wishbrick/v1/worker",
}

// RegisterService registers srv on s.
func RegisterService(s grpc.ServiceRegistrar, srv Service) {
	s.RegisterService(&ServiceDesc, srv)
}

func callHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(protocol.Request)
	if err := dec(in); err != nil {
		// Malformed payloads are answered in-band like any other bad request.
		return protocol.Error("Invalid request: " + err.Error()), nil
	}
	if interceptor == nil {
		return srv.(Service).Call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CallMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(Service).Call(ctx, req.(*protocol.Request))
	}
	return interceptor(ctx, in, info, handler)
}

// Invoke sends req over cc and returns the worker's reply.
func Invoke(ctx context.Context, cc grpc.ClientConnInterface, req *protocol.Request, opts ...grpc.CallOption) (*protocol.Reply, error) {
	out := new(protocol.Reply)
	if err := cc.Invoke(ctx, CallMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
